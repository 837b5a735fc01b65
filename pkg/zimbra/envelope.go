package zimbra

// Envelope construction for the SOAP-over-JSON protocol. Zimbra's JSON
// mapping uses "_jsns" as the namespace marker and "_content" for element
// text. Envelopes are built fresh per call because they embed the current
// auth token.

const (
	headerNamespace  = "urn:zimbra"
	accountNamespace = "urn:zimbraAccount"
	mailNamespace    = "urn:zimbraMail"
)

// RequestEnvelope builds the envelope for an authenticated SOAP call:
// a Header carrying the auth context for userName/token and a Body with
// the namespaced function payload.
func RequestEnvelope(function, namespace string, params map[string]interface{}, userName, token string) map[string]interface{} {
	return map[string]interface{}{
		"Header": map[string]interface{}{
			"context": requestContext(userName, token),
		},
		"Body": envelopeBody(function, namespace, params),
	}
}

// LoginEnvelope builds the AuthRequest envelope. Its header variant omits
// the authTokenControl, account, and authToken fields since no token
// exists yet.
func LoginEnvelope(loginID, password string) map[string]interface{} {
	return map[string]interface{}{
		"Header": map[string]interface{}{
			"context": loginContext(),
		},
		"Body": envelopeBody("AuthRequest", accountNamespace, map[string]interface{}{
			"account": map[string]interface{}{
				"_content": loginID,
				"by":       "name",
			},
			"password": password,
		}),
	}
}

func requestContext(userName, token string) map[string]interface{} {
	return map[string]interface{}{
		"_jsns": headerNamespace,
		"userAgent": map[string]interface{}{
			"name":    UserAgentName,
			"version": UserAgentVersion,
		},
		// voidOnExpired makes the server reject an expired token outright
		// instead of answering with a reduced-privilege session.
		"authTokenControl": map[string]interface{}{
			"voidOnExpired": true,
		},
		"account": map[string]interface{}{
			"_content": userName,
			"by":       "name",
		},
		"authToken": token,
	}
}

func loginContext() map[string]interface{} {
	return map[string]interface{}{
		"_jsns": headerNamespace,
		"userAgent": map[string]interface{}{
			"name":    UserAgentName,
			"version": UserAgentVersion,
		},
	}
}

func envelopeBody(function, namespace string, params map[string]interface{}) map[string]interface{} {
	payload := map[string]interface{}{
		"_jsns": namespace,
	}
	for k, v := range params {
		payload[k] = v
	}
	return map[string]interface{}{
		function: payload,
	}
}
