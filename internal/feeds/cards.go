package feeds

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Card is the subset of a Scryfall card the widget shows.
type Card struct {
	Name       string     `json:"name"`
	TypeLine   string     `json:"type_line"`
	OracleText string     `json:"oracle_text"`
	ManaCost   string     `json:"mana_cost"`
	Prices     CardPrices `json:"prices"`
	ImageURIs  struct {
		Normal string `json:"normal"`
		Small  string `json:"small"`
		Large  string `json:"large"`
	} `json:"image_uris"`
	SetName     string `json:"set_name"`
	Rarity      string `json:"rarity"`
	Power       string `json:"power"`
	Toughness   string `json:"toughness"`
	ScryfallURI string `json:"scryfall_uri"`
}

// CardPrices are market prices; Scryfall sends null for unknown ones.
type CardPrices struct {
	USD     *string `json:"usd"`
	USDFoil *string `json:"usd_foil"`
	EUR     *string `json:"eur"`
	EURFoil *string `json:"eur_foil"`
}

// Card looks up a card by exact name.
func (c *Client) Card(ctx context.Context, name string) (*Card, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyCardName
	}

	endpoint := c.endpoints.Scryfall + "/cards/named?exact=" + url.QueryEscape(name)
	var card Card
	if err := c.getJSON(ctx, endpoint, &card); err != nil {
		var se *statusError
		if errors.As(err, &se) && se.code == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %q", ErrCardNotFound, name)
		}
		return nil, fmt.Errorf("fetch card: %w", err)
	}
	return &card, nil
}

// FormatCard renders the card as the widget's plain-text info block.
func FormatCard(card Card) string {
	var b strings.Builder
	fmt.Fprintf(&b, "NAME: %s\n", card.Name)
	if card.ManaCost != "" {
		fmt.Fprintf(&b, "MANA_COST: %s\n", card.ManaCost)
	}
	if card.TypeLine != "" {
		fmt.Fprintf(&b, "TYPE: %s\n", card.TypeLine)
	}
	if card.Rarity != "" {
		fmt.Fprintf(&b, "RARITY: %s\n", card.Rarity)
	}
	if card.SetName != "" {
		fmt.Fprintf(&b, "SET: %s\n", card.SetName)
	}
	if card.Power != "" && card.Toughness != "" {
		fmt.Fprintf(&b, "P/T: %s/%s\n", card.Power, card.Toughness)
	}
	if card.OracleText != "" {
		fmt.Fprintf(&b, "\nORACLE_TEXT:\n%s\n", card.OracleText)
	}

	b.WriteString("\nPRICES:\n")
	for _, p := range []struct {
		label, symbol string
		value         *string
	}{
		{"USD", "$", card.Prices.USD},
		{"USD_FOIL", "$", card.Prices.USDFoil},
		{"EUR", "€", card.Prices.EUR},
		{"EUR_FOIL", "€", card.Prices.EURFoil},
	} {
		if p.value != nil && *p.value != "" {
			fmt.Fprintf(&b, "%s: %s%s\n", p.label, p.symbol, *p.value)
		}
	}
	return b.String()
}
