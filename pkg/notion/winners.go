package notion

import (
	"context"
	"fmt"

	"github.com/jomei/notionapi"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Winner is one incentive winner row destined for the winners database.
type Winner struct {
	Cohort     string
	Category   string // tier display name, or "Overall"
	Rank       int
	ClubNumber int
	ClubName   string
	Points     int
	UpdateDate string
}

// PublishResult reports what a publish run changed.
type PublishResult struct {
	Created int
	Updated int
}

// PublishWinners upserts winner pages into the given database, keyed by
// (club number, cohort, category). Existing pages are updated in place so
// re-publishing after a new snapshot never duplicates rows.
func PublishWinners(ctx context.Context, c Client, dbID string, winners []Winner) (PublishResult, error) {
	var res PublishResult

	existing, err := queryAll(ctx, c, dbID)
	if err != nil {
		return res, eris.Wrap(err, "notion: publish winners")
	}

	index := make(map[string]notionapi.ObjectID, len(existing))
	for _, page := range existing {
		if key, ok := pageKey(page); ok {
			index[key] = page.ID
		}
	}

	for _, w := range winners {
		props := winnerProperties(w)
		key := winnerKey(w.ClubNumber, w.Cohort, w.Category)

		if pageID, ok := index[key]; ok {
			_, err := c.UpdatePage(ctx, string(pageID), &notionapi.PageUpdateRequest{Properties: props})
			if err != nil {
				return res, eris.Wrapf(err, "notion: update winner club %d", w.ClubNumber)
			}
			res.Updated++
			continue
		}

		_, err := c.CreatePage(ctx, &notionapi.PageCreateRequest{
			Parent:     notionapi.Parent{Type: notionapi.ParentTypeDatabaseID, DatabaseID: notionapi.DatabaseID(dbID)},
			Properties: props,
		})
		if err != nil {
			return res, eris.Wrapf(err, "notion: create winner club %d", w.ClubNumber)
		}
		res.Created++
	}

	zap.L().Info("published winners",
		zap.Int("created", res.Created),
		zap.Int("updated", res.Updated),
	)
	return res, nil
}

// queryAll fetches every page of a database, following pagination cursors.
func queryAll(ctx context.Context, c Client, dbID string) ([]notionapi.Page, error) {
	var all []notionapi.Page
	req := &notionapi.DatabaseQueryRequest{}
	for {
		resp, err := c.QueryDatabase(ctx, dbID, req)
		if err != nil {
			return nil, eris.Wrap(err, "notion: query all")
		}
		all = append(all, resp.Results...)
		if !resp.HasMore {
			return all, nil
		}
		req = &notionapi.DatabaseQueryRequest{StartCursor: resp.NextCursor}
	}
}

func winnerKey(clubNumber int, cohort, category string) string {
	return fmt.Sprintf("%d|%s|%s", clubNumber, cohort, category)
}

func winnerProperties(w Winner) notionapi.Properties {
	return notionapi.Properties{
		"Club": &notionapi.TitleProperty{
			Title: []notionapi.RichText{{Text: &notionapi.Text{Content: w.ClubName}}},
		},
		"Club Number": &notionapi.NumberProperty{Number: float64(w.ClubNumber)},
		"Cohort":      &notionapi.SelectProperty{Select: notionapi.Option{Name: w.Cohort}},
		"Category":    &notionapi.SelectProperty{Select: notionapi.Option{Name: w.Category}},
		"Rank":        &notionapi.NumberProperty{Number: float64(w.Rank)},
		"Points":      &notionapi.NumberProperty{Number: float64(w.Points)},
		"As Of": &notionapi.RichTextProperty{
			RichText: []notionapi.RichText{{Text: &notionapi.Text{Content: w.UpdateDate}}},
		},
	}
}

// pageKey recovers the upsert key from an existing page's properties.
func pageKey(page notionapi.Page) (string, bool) {
	num, ok := page.Properties["Club Number"].(*notionapi.NumberProperty)
	if !ok {
		return "", false
	}
	cohort, ok := page.Properties["Cohort"].(*notionapi.SelectProperty)
	if !ok {
		return "", false
	}
	category, ok := page.Properties["Category"].(*notionapi.SelectProperty)
	if !ok {
		return "", false
	}
	return winnerKey(int(num.Number), cohort.Select.Name, category.Select.Name), true
}
