package http

import (
	"net/url"
	"strings"

	"github.com/KillerxG/RPG-YGO-Delta/internal/app"
	"github.com/KillerxG/RPG-YGO-Delta/internal/domain"
)

const imagesPrefix = "/v1/images/"

type ListingResponse struct {
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	CoverURL string `json:"cover_url,omitempty"`
}

// OpeningResponse is the JSON shape returned by the open endpoints.
type OpeningResponse struct {
	ID          string         `json:"id"`
	Kind        string         `json:"kind"`
	Source      string         `json:"source"`
	Policy      string         `json:"policy"`
	SuperRares  int            `json:"super_rares"`
	SecretRares int            `json:"secret_rares"`
	Cards       []CardResponse `json:"cards"`
	Reveal      []RevealResp   `json:"reveal"`
	Meta        MetaResp       `json:"meta"`
}

type CardResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Tier     string `json:"tier"`
	Label    string `json:"label,omitempty"`
	Position int    `json:"position"`
	Bonus    bool   `json:"bonus,omitempty"`
	ImageURL string `json:"image_url"`
}

type RevealResp struct {
	Index      int   `json:"index"`
	DelayMS    int64 `json:"delay_ms"`
	DurationMS int64 `json:"duration_ms"`
}

type MetaResp struct {
	RequestID string `json:"request_id"`
}

type PlayerRequest struct {
	Name string `json:"name"`
}

type PlayersResponse struct {
	Players  []string `json:"players"`
	Rarities []string `json:"rarities"`
}

type GalleryCard struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
}

type RarityResponse struct {
	Rarity string        `json:"rarity"`
	Cards  []GalleryCard `json:"cards"`
}

type ErrorResponse struct {
	Error      string                           `json:"error"`
	Shortfalls map[domain.Tier]domain.Shortfall `json:"shortfalls,omitempty"`
}

// ImageURL maps a catalog path to its image endpoint.
func ImageURL(p string) string {
	segments := strings.Split(p, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return imagesPrefix + strings.Join(segments, "/")
}

func toListings(ls []app.Listing) []ListingResponse {
	out := make([]ListingResponse, len(ls))
	for i, l := range ls {
		out[i] = ListingResponse{Name: l.Name, Kind: string(l.Kind)}
		if l.HasCover {
			out[i].CoverURL = ImageURL(l.Cover.Path)
		}
	}
	return out
}

func toOpening(o app.Opening, requestID string) OpeningResponse {
	cards := make([]CardResponse, len(o.Result.Cards))
	for i, dc := range o.Result.Cards {
		cards[i] = toCard(dc)
	}
	reveal := make([]RevealResp, len(o.Reveal))
	for i, ev := range o.Reveal {
		reveal[i] = RevealResp{
			Index:      ev.Index,
			DelayMS:    ev.Delay.Milliseconds(),
			DurationMS: ev.Duration.Milliseconds(),
		}
	}
	return OpeningResponse{
		ID:          o.ID.String(),
		Kind:        string(o.Kind),
		Source:      o.Source,
		Policy:      string(o.Result.Policy),
		SuperRares:  o.Result.Count(domain.TierSuperRare),
		SecretRares: o.Result.Count(domain.TierSecretRare),
		Cards:       cards,
		Reveal:      reveal,
		Meta:        MetaResp{RequestID: requestID},
	}
}

func toCard(dc domain.DrawnCard) CardResponse {
	return CardResponse{
		ID:       dc.ID,
		Name:     dc.Name,
		Tier:     string(dc.Tier),
		Label:    dc.Tier.DisplayName(),
		Position: dc.Position,
		Bonus:    dc.Bonus,
		ImageURL: ImageURL(dc.Path),
	}
}

func toGallery(cards []domain.Card) []GalleryCard {
	out := make([]GalleryCard, len(cards))
	for i, c := range cards {
		out[i] = GalleryCard{ID: c.ID, Name: c.Name, ImageURL: ImageURL(c.Path)}
	}
	return out
}
