package kinds

// JSON Schemas (draft 2020-12) for request payloads. They check shape only;
// completeness is the bilingual validator's job.

func str() map[string]any { return map[string]any{"type": "string"} }

func boolean() map[string]any { return map[string]any{"type": "boolean"} }

func object(properties map[string]any, required ...string) map[string]any {
	schema := map[string]any{
		"type":                 "object",
		"properties":           properties,
		"additionalProperties": false,
	}
	if len(required) > 0 {
		list := make([]any, len(required))
		for i, name := range required {
			list[i] = name
		}
		schema["required"] = list
	}
	return schema
}

func arrayOf(items map[string]any) map[string]any {
	return map[string]any{"type": "array", "items": items}
}

func localized() map[string]any {
	return object(map[string]any{"en": str(), "ur": str()})
}

func socialShare() map[string]any {
	return object(map[string]any{
		"image":       str(),
		"title":       localized(),
		"description": localized(),
	})
}

func recordProperties(extra map[string]any) map[string]any {
	props := map[string]any{
		"id":          str(),
		"slug":        str(),
		"image":       str(),
		"showOnHome":  boolean(),
		"socialShare": socialShare(),
		"createdAt":   str(),
		"updatedAt":   str(),
	}
	for key, value := range extra {
		props[key] = value
	}
	return props
}

var blogLocale = object(map[string]any{
	"title":            str(),
	"shortDescription": str(),
	"content":          str(),
	"author":           str(),
})

var blogSchema = object(recordProperties(map[string]any{
	"date":     str(),
	"category": str(),
	"en":       blogLocale,
	"ur":       blogLocale,
}), "en", "ur")

var eventLocale = object(map[string]any{
	"title":            str(),
	"shortDescription": str(),
	"description":      str(),
	"location":         str(),
	"timeLabel":        str(),
})

var eventSchema = object(recordProperties(map[string]any{
	"date": str(),
	"time": str(),
	"en":   eventLocale,
	"ur":   eventLocale,
}), "en", "ur")

var serviceLocale = object(map[string]any{
	"title":            str(),
	"shortDescription": str(),
	"description":      str(),
	"keyFeatures": arrayOf(object(map[string]any{
		"id":          str(),
		"title":       str(),
		"description": str(),
	}, "id")),
	"impact": arrayOf(object(map[string]any{
		"id":    str(),
		"value": str(),
		"label": str(),
	}, "id")),
	"contentBlocks": arrayOf(object(map[string]any{
		"id":      str(),
		"heading": str(),
		"body":    str(),
	}, "id")),
})

var serviceSchema = object(recordProperties(map[string]any{
	"icon": str(),
	"en":   serviceLocale,
	"ur":   serviceLocale,
}), "en", "ur")

var navbarSchema = object(map[string]any{
	"logo": str(),
	"items": arrayOf(object(map[string]any{
		"id":    str(),
		"route": str(),
		"slug":  str(),
		"label": localized(),
	}, "id", "route")),
}, "items")

var contactSchema = object(map[string]any{
	"email":   str(),
	"phone":   str(),
	"mapURL":  str(),
	"address": localized(),
	"hours":   localized(),
})

var pageHeader = object(map[string]any{
	"heading":    str(),
	"subheading": str(),
})

var pageSettingsSchema = object(map[string]any{
	"kind": map[string]any{"type": "string", "enum": []any{"blogs", "events", "services"}},
	"en":   pageHeader,
	"ur":   pageHeader,
}, "en", "ur")
