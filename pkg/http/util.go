package http

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

func BuildURL(baseURL, path string, queryParams map[string]string) (string, error) {
	// Parse the base URL
	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("error parsing base URL: %w", err)
	}

	// Append the path
	parsedURL.Path = path

	// Set query parameters dynamically
	q := url.Values{}
	for key, value := range queryParams {
		q.Set(key, value)
	}
	parsedURL.RawQuery = q.Encode()

	// Return the full URL as a string
	return parsedURL.String(), nil
}

// EncodeQuery builds a query string in the Zimbra REST convention:
// sequence-valued parameters are flattened into repeated URL-encoded
// "key[]=value" pairs placed ahead of the remaining scalar parameters,
// which are merged with the extra values (auth parameters) and encoded
// as a standard query string.
func EncodeQuery(params map[string]interface{}, extra url.Values) string {
	scalars := url.Values{}
	for k, vs := range extra {
		scalars[k] = append([]string{}, vs...)
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var arrayPairs []string
	for _, k := range keys {
		switch v := params[k].(type) {
		case []string:
			for _, item := range v {
				arrayPairs = append(arrayPairs, url.QueryEscape(k+"[]")+"="+url.QueryEscape(item))
			}
		case []interface{}:
			for _, item := range v {
				arrayPairs = append(arrayPairs, url.QueryEscape(k+"[]")+"="+url.QueryEscape(fmt.Sprint(item)))
			}
		default:
			scalars.Set(k, fmt.Sprint(v))
		}
	}

	encoded := scalars.Encode()
	if len(arrayPairs) == 0 {
		return encoded
	}
	if encoded == "" {
		return strings.Join(arrayPairs, "&")
	}
	return strings.Join(arrayPairs, "&") + "&" + encoded
}
