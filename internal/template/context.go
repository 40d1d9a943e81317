package template

import "maps"

// MergeContexts merges template data contexts into a single context.
// Later contexts override top-level keys of earlier ones; nil contexts are
// skipped.
func MergeContexts(contexts ...map[string]interface{}) map[string]interface{} {
	result := make(map[string]interface{})
	for _, ctx := range contexts {
		maps.Copy(result, ctx)
	}
	return result
}
