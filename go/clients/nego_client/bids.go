package nego_client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mcdev12/nego/go/internal/models"
)

type SubmitBidRequest struct {
	Price json.Number `json:"price"`
	Token string      `json:"token"`
}

type SubmitBidResponse struct {
	Error   *string `json:"error,omitempty"`
	Message string  `json:"message,omitempty"`
}

// SubmitBid posts one bid. A response carrying "error" yields a
// *RejectionError; anything that is not a JSON object wraps ErrTransport.
func (c *NegoClient) SubmitBid(ctx context.Context, bid models.BidAttempt) (*SubmitBidResponse, error) {
	req := SubmitBidRequest{
		Price: json.Number(bid.Price.String()),
		Token: bid.Token,
	}

	resp, err := c.PostJSON(ctx, auctionPath(BidsEndpoint, bid.AuctionID), req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to submit bid: %v", ErrTransport, err)
	}

	var response SubmitBidResponse
	if err := decode(resp, &response); err != nil {
		return nil, err
	}

	if response.Error != nil {
		return nil, &RejectionError{Message: *response.Error}
	}
	if !resp.OK() {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrTransport, resp.StatusCode)
	}

	return &response, nil
}
