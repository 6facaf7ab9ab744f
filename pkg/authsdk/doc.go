/*
Package authsdk is a Go client for the algamoney API and the shared home of
its error vocabulary.

# Authentication

The API issues tokens through the OAuth2 password grant. The client
authenticates itself with HTTP Basic, and the refresh token comes back in an
HttpOnly cookie scoped to /oauth/token instead of the JSON body. SDKClient
keeps that cookie in its jar, so refreshing needs no token argument:

	client := authsdk.NewSDKClient("http://localhost:8080", "angular", "@ngul@r0")

	session, err := client.AuthenticateWithPassword(ctx, "admin", "admin", nil)
	if err != nil {
		return err
	}

	// Rotates the refresh cookie; the previous one is no longer accepted
	err = session.Refresh(ctx)

	// Clears the refresh cookie
	err = session.Revoke(ctx)

# Resources

Session methods attach the bearer token and refresh it when it is about to
expire:

	categories, err := session.ListCategories(ctx)
	created, err := session.CreateCategory(ctx, "Educação")

# Errors

Every rejection is an *OAuth2Error carrying the HTTP status, the OAuth2 error
code, a developer-facing description and a user-facing message. The
predefined values compare by code:

	if errors.Is(err, authsdk.ErrInvalidGrant) {
		// wrong password, or a refresh token that was already used
	}

The server writes its responses with the same values through WriteError.
*/
package authsdk
