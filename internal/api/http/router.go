package http

import (
	"log/slog"
	"net/http"

	"github.com/rutsatz/algamoney-api/internal/api/domain"
	"github.com/rutsatz/algamoney-api/internal/api/service"
	"github.com/rutsatz/algamoney-api/pkg/httpx"
	"github.com/rutsatz/algamoney-api/pkg/jwtx"
	"github.com/rutsatz/algamoney-api/pkg/slogx"
)

// RouterConfig carries the knobs of the API listener.
type RouterConfig struct {
	AllowedOrigin string

	// PublicCategories serves GET /categorias without a token.
	PublicCategories bool

	// Zero values disable rate limiting.
	TokenRateLimit    httpx.RateLimitConfig
	ResourceRateLimit httpx.RateLimitConfig

	// CredentialRateLimit buckets password grants by address and username.
	CredentialRateLimit httpx.RateLimitConfig
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	cfg      RouterConfig
	verifier jwtx.Verifier
	logger   *slog.Logger
	metrics  *Metrics

	TokenService    *service.TokenService
	CategoryService *service.CategoryService
	Bridge          *RefreshCookieBridge
}

func NewRouter(cfg RouterConfig, verifier jwtx.Verifier, logger *slog.Logger, metrics *Metrics) *Router {
	r := &Router{
		Mux:      http.NewServeMux(),
		cfg:      cfg,
		verifier: verifier,
		logger:   logger,
		metrics:  metrics,
	}

	// CORS must wrap the mux so preflights never reach authentication
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}
	if metrics != nil {
		r.middlewares = append(r.middlewares, metrics.Middleware)
	}
	r.middlewares = append(r.middlewares, httpx.CORSGate(httpx.DefaultCORSConfig(cfg.AllowedOrigin)))

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerToken()
	r.registerCategories()
	r.registerCatchAll()
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title						Algamoney API
//	@version					1.0
//	@description				Ledger API secured with OAuth2 password and refresh_token grants.
//	@description				Access tokens are HS256 JWTs. The refresh token travels in an HttpOnly cookie scoped to /oauth/token.
//
//	@host						localhost:8080
//	@BasePath					/
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// secured is the resource guard: bearer verification, then the rule.
func (r *Router) secured(h http.Handler, rule httpx.Rule) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(r.verifier),
		httpx.Authorize(rule),
		httpx.RateLimitByUser(r.cfg.ResourceRateLimit),
	)
}

func (r *Router) registerToken() {
	tokenHandler := &TokenHandler{TokenService: r.TokenService, Metrics: r.metrics}

	// POST /oauth/token - IP limit covers both grants, the username limit
	// slows password guessing against one account
	r.Mux.Handle("POST /oauth/token",
		httpx.Chain(tokenHandler,
			httpx.Tag(OpIssueToken),
			httpx.RateLimitByIP(r.cfg.TokenRateLimit),
			httpx.RateLimitByIPAndFormField(r.cfg.CredentialRateLimit, "username"),
			r.Bridge.Middleware,
		),
	)

	// DELETE /tokens/revoke - any authenticated caller
	r.Mux.Handle("DELETE /tokens/revoke",
		r.secured(&RevokeHandler{Bridge: r.Bridge}, httpx.Rule{}),
	)
}

func (r *Router) registerCategories() {
	h := &CategoriesHandler{CategoryService: r.CategoryService}

	read := httpx.All(httpx.HasAuthority(domain.AuthoritySearchCategory), httpx.HasScope("read"))
	create := httpx.All(httpx.HasAuthority(domain.AuthorityCreateCategory), httpx.HasScope("write"))
	remove := httpx.All(httpx.HasAuthority(domain.AuthorityRemoveCategory), httpx.HasScope("write"))

	list := r.secured(http.HandlerFunc(h.HandleList), read)
	if r.cfg.PublicCategories {
		list = httpx.Chain(http.HandlerFunc(h.HandleList), httpx.RateLimitByIP(r.cfg.ResourceRateLimit))
	}

	r.Mux.Handle("GET /categorias", list)
	r.Mux.Handle("GET /categorias/{codigo}", r.secured(http.HandlerFunc(h.HandleGet), read))
	r.Mux.Handle("POST /categorias", r.secured(http.HandlerFunc(h.HandleCreate), create))
	r.Mux.Handle("DELETE /categorias/{codigo}", r.secured(http.HandlerFunc(h.HandleDelete), remove))
}

// registerCatchAll makes every other path require a token before it 404s.
func (r *Router) registerCatchAll() {
	r.Mux.Handle("/", r.secured(http.HandlerFunc(NotFoundHandler), httpx.Rule{}))
}
