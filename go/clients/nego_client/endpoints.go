package nego_client

const (
	// Default server address
	DefaultBaseURL = "http://localhost:5000"

	// API Endpoints, each followed by the auction id
	BidsEndpoint           = "/api/bids/"
	SendInvitationEndpoint = "/send_invitation/"
	ResetAuctionEndpoint   = "/reset_auction/"
	EndAuctionEndpoint     = "/end_auction/"
	DeleteAuctionEndpoint  = "/delete_auction/"

	// Admin page, reloaded after admin actions
	AdminPagePath = "/admin/"

	// Headers
	UserAgentHeader = "User-Agent"
	UserAgent       = "nego-cli"
)
