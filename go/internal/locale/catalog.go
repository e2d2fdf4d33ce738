package locale

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Catalog holds every user-visible string of the panels.
// Entries containing %s are formatted with a single argument.
type Catalog struct {
	TimerPending string `yaml:"timer_pending"`
	TimerOpen    string `yaml:"timer_open"`
	TimerClosed  string `yaml:"timer_closed"`
	LowestBid    string `yaml:"lowest_bid"`
	Rank         string `yaml:"rank"`
	RankNone     string `yaml:"rank_none"`

	BidTransportFailed string `yaml:"bid_transport_failed"`

	InviteNameRequired   string `yaml:"invite_name_required"`
	InviteCopied         string `yaml:"invite_copied"`
	InviteFailed         string `yaml:"invite_failed"`
	ResetDone            string `yaml:"reset_done"`
	ResetRejected        string `yaml:"reset_rejected"`
	ResetFailed          string `yaml:"reset_failed"`
	EndDone              string `yaml:"end_done"`
	EndRejected          string `yaml:"end_rejected"`
	EndFailed            string `yaml:"end_failed"`
	DeleteDone           string `yaml:"delete_done"`
	DeleteRejected       string `yaml:"delete_rejected"`
	DeleteFailed         string `yaml:"delete_failed"`
	AuctionEndedByServer string `yaml:"auction_ended_by_server"`
	AuctionWasReset      string `yaml:"auction_was_reset"`
	AuctionWasDeleted    string `yaml:"auction_was_deleted"`
}

// English is the default catalog.
func English() Catalog {
	return Catalog{
		TimerPending: "Auction starts in: %s",
		TimerOpen:    "Time remaining: %s",
		TimerClosed:  "Auction ended",
		LowestBid:    "Lowest bid: %s",
		Rank:         "Your position: %s",
		RankNone:     "--",

		BidTransportFailed: "Could not submit the bid.",

		InviteNameRequired:   "Enter the user's name.",
		InviteCopied:         "Invitation copied to clipboard. The link is also on the invitations list.",
		InviteFailed:         "An error occurred while generating the invitation.",
		ResetDone:            "The auction has been reset.",
		ResetRejected:        "There was a problem resetting the auction.",
		ResetFailed:          "An error occurred while resetting the auction.",
		EndDone:              "The auction has been ended.",
		EndRejected:          "There was a problem ending the auction.",
		EndFailed:            "An error occurred while ending the auction.",
		DeleteDone:           "The auction has been deleted.",
		DeleteRejected:       "There was a problem deleting the auction.",
		DeleteFailed:         "An error occurred while deleting the auction.",
		AuctionEndedByServer: "The auction was ended by the organiser.",
		AuctionWasReset:      "The auction was reset by the organiser.",
		AuctionWasDeleted:    "The auction was deleted by the organiser.",
	}
}

// Polish is the catalog of the Polish-language web panels.
func Polish() Catalog {
	return Catalog{
		TimerPending: "Aukcja startuje za: %s",
		TimerOpen:    "Pozostały czas: %s",
		TimerClosed:  "Aukcja zakończona",
		LowestBid:    "Najniższa oferta: %s zł",
		Rank:         "Twoja pozycja: %s",
		RankNone:     "--",

		BidTransportFailed: "Nie udało się wysłać oferty.",

		InviteNameRequired:   "Podaj imię użytkownika.",
		InviteCopied:         "Zaproszenie skopiowano do schowka. Link znajdziesz również na poniższej liście.",
		InviteFailed:         "Wystąpił błąd przy generowaniu zaproszenia.",
		ResetDone:            "Aukcja została zresetowana.",
		ResetRejected:        "Wystąpił problem podczas resetowania aukcji.",
		ResetFailed:          "Wystąpił błąd przy resetowaniu aukcji.",
		EndDone:              "Aukcja została zakończona.",
		EndRejected:          "Wystąpił problem podczas kończenia aukcji.",
		EndFailed:            "Wystąpił błąd przy kończeniu aukcji.",
		DeleteDone:           "Aukcja została usunięta.",
		DeleteRejected:       "Wystąpił problem podczas usuwania aukcji.",
		DeleteFailed:         "Wystąpił błąd przy usuwaniu aukcji.",
		AuctionEndedByServer: "Aukcja została zakończona przez organizatora.",
		AuctionWasReset:      "Aukcja została zresetowana przez organizatora.",
		AuctionWasDeleted:    "Aukcja została usunięta przez organizatora.",
	}
}

// ForName returns the built-in catalog for a locale name ("en", "pl", "pl_PL", ...).
func ForName(name string) (Catalog, error) {
	lang := strings.ToLower(name)
	if i := strings.IndexAny(lang, "_-."); i >= 0 {
		lang = lang[:i]
	}

	switch lang {
	case "", "en":
		return English(), nil
	case "pl":
		return Polish(), nil
	default:
		return Catalog{}, fmt.Errorf("unsupported locale %q", name)
	}
}

// Merge returns c with every non-empty field of overrides applied.
func (c Catalog) Merge(overrides Catalog) Catalog {
	merge := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}

	merge(&c.TimerPending, overrides.TimerPending)
	merge(&c.TimerOpen, overrides.TimerOpen)
	merge(&c.TimerClosed, overrides.TimerClosed)
	merge(&c.LowestBid, overrides.LowestBid)
	merge(&c.Rank, overrides.Rank)
	merge(&c.RankNone, overrides.RankNone)
	merge(&c.BidTransportFailed, overrides.BidTransportFailed)
	merge(&c.InviteNameRequired, overrides.InviteNameRequired)
	merge(&c.InviteCopied, overrides.InviteCopied)
	merge(&c.InviteFailed, overrides.InviteFailed)
	merge(&c.ResetDone, overrides.ResetDone)
	merge(&c.ResetRejected, overrides.ResetRejected)
	merge(&c.ResetFailed, overrides.ResetFailed)
	merge(&c.EndDone, overrides.EndDone)
	merge(&c.EndRejected, overrides.EndRejected)
	merge(&c.EndFailed, overrides.EndFailed)
	merge(&c.DeleteDone, overrides.DeleteDone)
	merge(&c.DeleteRejected, overrides.DeleteRejected)
	merge(&c.DeleteFailed, overrides.DeleteFailed)
	merge(&c.AuctionEndedByServer, overrides.AuctionEndedByServer)
	merge(&c.AuctionWasReset, overrides.AuctionWasReset)
	merge(&c.AuctionWasDeleted, overrides.AuctionWasDeleted)
	return c
}

// LoadOverrides reads a YAML file of catalog entries.
func LoadOverrides(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("failed to read messages file: %w", err)
	}

	var overrides Catalog
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return Catalog{}, fmt.Errorf("failed to parse messages file: %w", err)
	}
	return overrides, nil
}
