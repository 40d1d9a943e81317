package calendar

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// quotedKeyPattern strips the quotes of anything shaped like `"key":` on a
// line. It is neither anchored nor limited to keys, so string values that
// look like `"text":` lose their quotes as well.
var quotedKeyPattern = regexp.MustCompile(`"(.+)":`)

// legacyOptionsJSON produces the literal by textual substitution over a
// pretty printed JSON document:
//
//  1. every callback is replaced by a placeholder `[md5(callback)]`;
//  2. the parameters are JSON encoded with a four space indent and the
//     escaping of encoding/json;
//  3. quoted plugin and locale names and string click handlers of custom
//     buttons are unquoted wherever they occur;
//  4. the quotes of every `"key":` match are stripped;
//  5. quoted placeholders are replaced by the callback text.
//
// Two callbacks with the same text share a placeholder, so the last one
// replaced wins. The indent setting is ignored.
func (c *Calendar) legacyOptionsJSON() (string, error) {
	params := c.GetOptions()

	names := c.callbackNames()
	placeholders := make(map[string]string, len(names))
	for _, name := range names {
		placeholders[name] = placeholder(c.callbacks[name])
		params.Set(name, placeholders[name])
	}
	c.injectEvents(params)

	data, err := json.MarshalIndent(params, "", DefaultIndent)
	if err != nil {
		return "", fmt.Errorf("failed to encode calendar options: %w", err)
	}

	out := replaceKeys(string(data), params)
	for _, name := range names {
		out = strings.ReplaceAll(out, `"`+placeholders[name]+`"`, c.callbacks[name])
	}
	return out, nil
}

func placeholder(callback string) string {
	sum := md5.Sum([]byte(callback))
	return "[" + hex.EncodeToString(sum[:]) + "]"
}

// replaceKeys applies the unquoting passes of legacyOptionsJSON to the
// encoded document.
func replaceKeys(doc string, params *Options) string {
	var replacements []string

	for pair := params.Oldest(); pair != nil; pair = pair.Next() {
		switch strings.ToLower(pair.Key) {
		case "plugins", "locales":
			if list, ok := asList(pair.Value); ok {
				for _, item := range list {
					name := fmt.Sprint(item)
					replacements = append(replacements, `"`+name+`"`, name)
				}
				continue
			}
			name := fmt.Sprint(pair.Value)
			replacements = append(replacements, `"`+name+`"`, name)

		case "custombuttons":
			buttons, ok := asObject(pair.Value)
			if !ok {
				continue
			}
			for button := buttons.Oldest(); button != nil; button = button.Next() {
				settings, ok := asObject(button.Value)
				if !ok {
					continue
				}
				for setting := settings.Oldest(); setting != nil; setting = setting.Next() {
					click, ok := setting.Value.(string)
					if !ok || !strings.EqualFold(setting.Key, "click") {
						continue
					}
					quoted, err := json.Marshal(click)
					if err != nil {
						continue
					}
					replacements = append(replacements, string(quoted), click)
				}
			}
		}
	}

	// Replacements run one after another over the whole document, each
	// seeing the output of the previous one.
	for i := 0; i < len(replacements); i += 2 {
		doc = strings.ReplaceAll(doc, replacements[i], replacements[i+1])
	}

	return quotedKeyPattern.ReplaceAllString(doc, "${1}:")
}
