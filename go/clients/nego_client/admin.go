package nego_client

import (
	"context"
	"fmt"

	"github.com/mcdev12/nego/go/clients"
)

type SendInvitationRequest struct {
	UserName string `json:"user_name"`
}

type SendInvitationResponse struct {
	Link  string  `json:"link"`
	Error *string `json:"error,omitempty"`
}

// ActionResponse is the reply of the reset, end and delete endpoints
type ActionResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// SendInvitation asks the server for an invitation link for userName
func (c *NegoClient) SendInvitation(ctx context.Context, auctionID, userName string) (string, error) {
	resp, err := c.PostJSON(ctx, auctionPath(SendInvitationEndpoint, auctionID), SendInvitationRequest{UserName: userName})
	if err != nil {
		return "", fmt.Errorf("%w: failed to send invitation: %v", ErrTransport, err)
	}

	var response SendInvitationResponse
	if err := decode(resp, &response); err != nil {
		return "", err
	}
	if response.Error != nil {
		return "", &RejectionError{Message: *response.Error}
	}
	if response.Link == "" {
		return "", fmt.Errorf("%w: status %d, response has no link", ErrTransport, resp.StatusCode)
	}

	return response.Link, nil
}

// ResetAuction reports whether the server accepted the reset
func (c *NegoClient) ResetAuction(ctx context.Context, auctionID string) (*ActionResponse, error) {
	resp, err := c.Post(ctx, auctionPath(ResetAuctionEndpoint, auctionID), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to reset auction: %v", ErrTransport, err)
	}
	return decodeAction(resp)
}

// EndAuction reports whether the server accepted ending the auction
func (c *NegoClient) EndAuction(ctx context.Context, auctionID string) (*ActionResponse, error) {
	resp, err := c.Post(ctx, auctionPath(EndAuctionEndpoint, auctionID), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to end auction: %v", ErrTransport, err)
	}
	return decodeAction(resp)
}

// DeleteAuction reports whether the server deleted the auction
func (c *NegoClient) DeleteAuction(ctx context.Context, auctionID string) (*ActionResponse, error) {
	resp, err := c.Delete(ctx, auctionPath(DeleteAuctionEndpoint, auctionID))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to delete auction: %v", ErrTransport, err)
	}
	return decodeAction(resp)
}

func decodeAction(resp *clients.Response) (*ActionResponse, error) {
	var response ActionResponse
	if err := decode(resp, &response); err != nil {
		return nil, err
	}
	return &response, nil
}
