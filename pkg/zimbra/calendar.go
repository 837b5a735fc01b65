package zimbra

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
)

// How far ahead GetUpcomingEvents expands recurring appointments.
const eventWindow = 30 * 24 * time.Hour

// GetUpcomingEvents returns the appointments starting in the 30 days after
// since, across all of the user's calendar folders, ordered by first
// instance start time.
//
// It is a two-step operation: GetFolderRequest enumerates the calendar
// folders (view=appointment), whose ids are combined into an OR query of
// inid:"<id>" terms, then SearchRequest expands appointment instances in
// the window.
func (c *Client) GetUpcomingEvents(ctx context.Context, userID string, since time.Time) ([]interface{}, error) {
	folderResult, err := c.SoapCall(ctx, userID, "GetFolderRequest", mailNamespace, map[string]interface{}{
		"view": "appointment",
	}, true)
	if err != nil {
		return nil, err
	}

	query := calendarFolderQuery(calendarFolders(folderResult.JSON))
	sinceMs := since.Unix() * 1000

	searchResult, err := c.SoapCall(ctx, userID, "SearchRequest", mailNamespace, map[string]interface{}{
		"query":              query,
		"sortBy":             "dateAsc",
		"fetch":              "all",
		"offset":             0,
		"limit":              100,
		"types":              "appointment",
		"calExpandInstStart": sinceMs,
		"calExpandInstEnd":   sinceMs + eventWindow.Milliseconds(),
	}, true)
	if err != nil {
		return nil, err
	}

	events := digSlice(searchResult.JSON, "Body", "SearchResponse", "appt")
	if events == nil {
		return []interface{}{}, nil
	}
	sortEventsByStart(events)
	return events, nil
}

// calendarFolders picks the user's calendar folder list out of a
// GetFolderResponse. The folders of interest hang off the root folder
// entry at Body.GetFolderResponse.folder[0].folder.
func calendarFolders(resp map[string]interface{}) []interface{} {
	roots := digSlice(resp, "Body", "GetFolderResponse", "folder")
	if len(roots) == 0 {
		return nil
	}
	return asSlice(asMap(roots[0])["folder"])
}

// calendarFolderQuery combines folder ids into an OR query fragment of the
// form (inid:"1" OR inid:"2" OR inid:"3"). Each folder is immediately
// followed by its direct subfolders, preserving the server's order.
func calendarFolderQuery(folders []interface{}) string {
	var terms []string
	for _, f := range folders {
		folder := asMap(f)
		if folder == nil {
			continue
		}
		if id, ok := folder["id"]; ok {
			terms = append(terms, fmt.Sprintf("inid:%q", idString(id)))
		}
		for _, sub := range asSlice(folder["folder"]) {
			subfolder := asMap(sub)
			if subfolder == nil {
				continue
			}
			if id, ok := subfolder["id"]; ok {
				terms = append(terms, fmt.Sprintf("inid:%q", idString(id)))
			}
		}
	}
	return "(" + strings.Join(terms, " OR ") + ")"
}

// sortEventsByStart orders appointments ascending by the start time of
// their first instance. The sort is stable, so appointments with equal
// start times keep the order the server emitted them in.
func sortEventsByStart(events []interface{}) {
	sort.SliceStable(events, func(i, j int) bool {
		return eventStart(events[i]) < eventStart(events[j])
	})
}

func eventStart(v interface{}) float64 {
	instances := asSlice(asMap(v)["inst"])
	if len(instances) == 0 {
		return 0
	}
	return numberValue(asMap(instances[0])["s"])
}
