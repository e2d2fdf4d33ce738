package nego_client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/nego/go/internal/models"
)

const testAuctionID = "6f1c2a8e-3d4b-4f5a-9c7e-1b2a3c4d5e6f"

func newTestServer(t *testing.T, method, path string, status int, body string, check func(r *http.Request)) *NegoClient {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, method, r.Method)
		assert.Equal(t, path, r.URL.Path)
		assert.Equal(t, UserAgent, r.Header.Get(UserAgentHeader))
		if check != nil {
			check(r)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return NewNegoClient(srv.URL + "/")
}

func TestSubmitBid(t *testing.T) {
	bid := models.BidAttempt{Price: decimal.RequireFromString("123.50"), AuctionID: testAuctionID, Token: "tok"}

	t.Run("accepted", func(t *testing.T) {
		c := newTestServer(t, http.MethodPost, BidsEndpoint+testAuctionID, http.StatusOK, `{"message":"ok"}`, func(r *http.Request) {
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			raw, err := io.ReadAll(r.Body)
			assert.NoError(t, err)
			assert.JSONEq(t, `{"price":123.5,"token":"tok"}`, string(raw))
		})

		resp, err := c.SubmitBid(context.Background(), bid)
		require.NoError(t, err)
		assert.Equal(t, "ok", resp.Message)
	})

	t.Run("price is sent as a JSON number", func(t *testing.T) {
		c := newTestServer(t, http.MethodPost, BidsEndpoint+testAuctionID, http.StatusOK, `{}`, func(r *http.Request) {
			var body map[string]interface{}
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			_, isNumber := body["price"].(float64)
			assert.True(t, isNumber)
		})

		_, err := c.SubmitBid(context.Background(), bid)
		require.NoError(t, err)
	})

	t.Run("rejected", func(t *testing.T) {
		c := newTestServer(t, http.MethodPost, BidsEndpoint+testAuctionID, http.StatusBadRequest, `{"error":"Bid too high"}`, nil)

		_, err := c.SubmitBid(context.Background(), bid)
		require.Error(t, err)
		var rej *RejectionError
		require.ErrorAs(t, err, &rej)
		assert.Equal(t, "Bid too high", rej.Message)
		assert.NotErrorIs(t, err, ErrTransport)
	})

	t.Run("non JSON body", func(t *testing.T) {
		c := newTestServer(t, http.MethodPost, BidsEndpoint+testAuctionID, http.StatusOK, `<html>oops</html>`, nil)

		_, err := c.SubmitBid(context.Background(), bid)
		assert.ErrorIs(t, err, ErrTransport)
		var rej *RejectionError
		assert.False(t, errors.As(err, &rej))
	})

	t.Run("server error without error field", func(t *testing.T) {
		c := newTestServer(t, http.MethodPost, BidsEndpoint+testAuctionID, http.StatusInternalServerError, `{}`, nil)

		_, err := c.SubmitBid(context.Background(), bid)
		assert.ErrorIs(t, err, ErrTransport)
	})

	t.Run("connection refused", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		c := NewNegoClient(srv.URL)
		srv.Close()

		_, err := c.SubmitBid(context.Background(), bid)
		assert.ErrorIs(t, err, ErrTransport)
	})
}

func TestSendInvitation(t *testing.T) {
	t.Run("link returned", func(t *testing.T) {
		c := newTestServer(t, http.MethodPost, SendInvitationEndpoint+testAuctionID, http.StatusOK, `{"link":"http://x/auction/abc"}`, func(r *http.Request) {
			raw, err := io.ReadAll(r.Body)
			assert.NoError(t, err)
			assert.JSONEq(t, `{"user_name":"Alice"}`, string(raw))
		})

		link, err := c.SendInvitation(context.Background(), testAuctionID, "Alice")
		require.NoError(t, err)
		assert.Equal(t, "http://x/auction/abc", link)
	})

	t.Run("server error shown verbatim", func(t *testing.T) {
		c := newTestServer(t, http.MethodPost, SendInvitationEndpoint+testAuctionID, http.StatusBadRequest, `{"error":"User already invited"}`, nil)

		_, err := c.SendInvitation(context.Background(), testAuctionID, "Alice")
		var rej *RejectionError
		require.ErrorAs(t, err, &rej)
		assert.Equal(t, "User already invited", rej.Error())
	})

	t.Run("missing link", func(t *testing.T) {
		c := newTestServer(t, http.MethodPost, SendInvitationEndpoint+testAuctionID, http.StatusOK, `{}`, nil)

		_, err := c.SendInvitation(context.Background(), testAuctionID, "Alice")
		assert.ErrorIs(t, err, ErrTransport)
	})
}

func TestAuctionActions(t *testing.T) {
	tests := []struct {
		name    string
		method  string
		path    string
		body    string
		call    func(c *NegoClient) (*ActionResponse, error)
		success bool
		errText string
	}{
		{
			name: "reset succeeds", method: http.MethodPost, path: ResetAuctionEndpoint + testAuctionID,
			body: `{"success":true}`, success: true,
			call: func(c *NegoClient) (*ActionResponse, error) { return c.ResetAuction(context.Background(), testAuctionID) },
		},
		{
			name: "reset refused", method: http.MethodPost, path: ResetAuctionEndpoint + testAuctionID,
			body: `{"success":false}`, success: false,
			call: func(c *NegoClient) (*ActionResponse, error) { return c.ResetAuction(context.Background(), testAuctionID) },
		},
		{
			name: "end succeeds", method: http.MethodPost, path: EndAuctionEndpoint + testAuctionID,
			body: `{"success":true}`, success: true,
			call: func(c *NegoClient) (*ActionResponse, error) { return c.EndAuction(context.Background(), testAuctionID) },
		},
		{
			name: "delete refused with error", method: http.MethodDelete, path: DeleteAuctionEndpoint + testAuctionID,
			body: `{"success":false,"error":"Auction not found"}`, success: false, errText: "Auction not found",
			call: func(c *NegoClient) (*ActionResponse, error) { return c.DeleteAuction(context.Background(), testAuctionID) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestServer(t, tt.method, tt.path, http.StatusOK, tt.body, nil)

			resp, err := tt.call(c)
			require.NoError(t, err)
			assert.Equal(t, tt.success, resp.Success)
			assert.Equal(t, tt.errText, resp.Error)
		})
	}
}

func TestAuctionActions_MalformedBody(t *testing.T) {
	c := newTestServer(t, http.MethodPost, EndAuctionEndpoint+testAuctionID, http.StatusBadGateway, `Bad Gateway`, nil)

	_, err := c.EndAuction(context.Background(), testAuctionID)
	assert.ErrorIs(t, err, ErrTransport)
}

func TestAdminPageURL(t *testing.T) {
	c := NewNegoClient("http://localhost:5000/")
	assert.Equal(t, "http://localhost:5000/admin/a1#invitations", c.AdminPageURL("a1", "invitations"))
	assert.Equal(t, "http://localhost:5000/admin/a1", c.AdminPageURL("a1", ""))
}
