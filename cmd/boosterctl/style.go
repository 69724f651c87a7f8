package main

import (
	"strconv"

	"github.com/pterm/pterm"

	"github.com/KillerxG/RPG-YGO-Delta/internal/app"
	"github.com/KillerxG/RPG-YGO-Delta/internal/domain"
)

// tierStyle colours a card by rarity: cyan for super rares, yellow for
// secret rares and gray for the marker.
func tierStyle(t domain.Tier) *pterm.Style {
	switch t {
	case domain.TierSuperRare:
		return pterm.NewStyle(pterm.FgLightCyan)
	case domain.TierSecretRare:
		return pterm.NewStyle(pterm.FgYellow, pterm.Bold)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}

func cardRows(cards []domain.DrawnCard) pterm.TableData {
	rows := pterm.TableData{{"#", "Card", "Rarity", "Path"}}
	for _, c := range cards {
		style := tierStyle(c.Tier)
		label := c.Tier.DisplayName()
		if c.Bonus {
			label += " (bonus)"
		}
		rows = append(rows, []string{
			strconv.Itoa(c.Position),
			style.Sprint(c.ID),
			style.Sprint(label),
			c.Path,
		})
	}
	return rows
}

func cardLine(c domain.DrawnCard) string {
	label := c.Tier.DisplayName()
	if label == "" {
		return tierStyle(c.Tier).Sprintf("%2d  %s", c.Position, c.Name)
	}
	return tierStyle(c.Tier).Sprintf("%2d  %s  [%s]", c.Position, c.Name, label)
}

func listingRows(ls []app.Listing) pterm.TableData {
	rows := pterm.TableData{{"Name", "Cover"}}
	for _, l := range ls {
		cover := pterm.Gray("none")
		if l.HasCover {
			cover = l.Cover.Path
		}
		rows = append(rows, []string{l.Name, cover})
	}
	return rows
}

func bullets(items []string) []pterm.BulletListItem {
	out := make([]pterm.BulletListItem, len(items))
	for i, item := range items {
		out[i] = pterm.BulletListItem{Level: 0, Text: item}
	}
	return out
}

func renderGroups(player string, groups []app.RarityGroup) error {
	pterm.DefaultSection.Println(player)
	if len(groups) == 0 || (len(groups) == 1 && len(groups[0].Cards) == 0) {
		pterm.Info.Println("no cards")
		return nil
	}
	var items []pterm.BulletListItem
	for _, g := range groups {
		items = append(items, pterm.BulletListItem{Level: 0, Text: pterm.Bold.Sprintf("%s (%d)", g.Rarity, len(g.Cards))})
		for _, c := range g.Cards {
			items = append(items, pterm.BulletListItem{Level: 1, Text: c.Name})
		}
	}
	return pterm.DefaultBulletList.WithItems(items).Render()
}
