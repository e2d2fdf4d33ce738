package nego_client

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/mcdev12/nego/go/clients"
)

type NegoClient struct {
	*clients.BaseClient
}

func NewNegoClient(baseURL string) *NegoClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	client := &NegoClient{
		BaseClient: clients.NewBaseClient(strings.TrimRight(baseURL, "/")),
	}

	client.SetHeader(UserAgentHeader, UserAgent)

	return client
}

// AdminPageURL returns the admin page address for an auction, with an
// optional fragment naming the section to scroll to.
func (c *NegoClient) AdminPageURL(auctionID, fragment string) string {
	u := c.BaseURL() + AdminPagePath + url.PathEscape(auctionID)
	if fragment != "" {
		u += "#" + fragment
	}
	return u
}

func auctionPath(endpoint, auctionID string) string {
	return endpoint + url.PathEscape(auctionID)
}

// decode parses a JSON body into out. Any failure is a transport failure.
func decode(resp *clients.Response, out interface{}) error {
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return fmt.Errorf("%w: status %d, invalid JSON body: %v", ErrTransport, resp.StatusCode, err)
	}
	return nil
}
