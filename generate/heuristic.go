package generate

import "github.com/fwojciec/schemascan"

// Heuristic derives a minimal item set from page signals alone.
//
// A WebSite item is always produced. An Organization item follows when the
// page exposes any email, phone or social link; fields without a source are
// omitted. The output depends only on pc.
func Heuristic(pc *schemascan.PageContent) []schemascan.Item {
	description := pc.Description
	if description == "" {
		description = pc.Title
	}

	items := []schemascan.Item{
		generated("WebSite", map[string]any{
			"@context":    schemascan.SchemaContext,
			"@type":       "WebSite",
			"name":        pc.Title,
			"url":         pc.URL,
			"description": description,
			"keywords":    pc.Keywords,
		}),
	}

	if !pc.HasContactSignals() {
		return items
	}

	org := map[string]any{
		"@context":    schemascan.SchemaContext,
		"@type":       "Organization",
		"name":        pc.Title,
		"url":         pc.URL,
		"description": description,
	}
	if len(pc.Emails) > 0 {
		org["email"] = pc.Emails[0]
	}
	if len(pc.Phones) > 0 {
		org["telephone"] = pc.Phones[0]
	}
	if len(pc.SocialLinks) > 0 {
		org["sameAs"] = append([]string(nil), pc.SocialLinks...)
	}
	return append(items, generated("Organization", org))
}

func generated(typ string, data map[string]any) schemascan.Item {
	return schemascan.Item{
		Type:   typ,
		Data:   data,
		Format: schemascan.FormatJSONLD,
		Source: schemascan.SourceScript,
	}
}
