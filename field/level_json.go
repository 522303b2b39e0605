package field

import (
	"errors"
	"fmt"
	"os"

	"github.com/tidwall/gjson"
)

var ErrBadJSON = errors.New("malformed JSON level")

// ParseLevelJSON decodes the JSON form of a level:
//
//	{"name": "...", "rows": ["###", ...], "player": {"x": 1.5, "y": 1.5, "heading": 90}}
func ParseLevelJSON(data []byte) (*Field, string, error) {
	if !gjson.ValidBytes(data) {
		return nil, "", ErrBadJSON
	}

	doc := gjson.ParseBytes(data)
	rows := doc.Get("rows")
	if !rows.IsArray() {
		return nil, "", fmt.Errorf("%w: rows must be an array of strings", ErrBadJSON)
	}

	lvl := Level{Name: doc.Get("name").String()}
	for i, r := range rows.Array() {
		if r.Type != gjson.String {
			return nil, "", fmt.Errorf("%w: row %d is %s, want string", ErrBadJSON, i, r.Type)
		}
		lvl.Rows = append(lvl.Rows, r.Str)
	}

	for key, dst := range map[string]*float64{
		"player.x":       &lvl.Player.X,
		"player.y":       &lvl.Player.Y,
		"player.heading": &lvl.Player.Heading,
	} {
		v := doc.Get(key)
		if !v.Exists() {
			continue
		}
		if v.Type != gjson.Number {
			return nil, "", fmt.Errorf("%w: %s must be a number", ErrBadJSON, key)
		}
		*dst = v.Num
	}

	f, err := lvl.Build()
	return f, lvl.Name, err
}

func loadLevelJSON(path string) (*Field, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("load level: %w", err)
	}
	f, name, err := ParseLevelJSON(data)
	if err != nil {
		return nil, "", fmt.Errorf("load level %s: %w", path, err)
	}
	return f, name, nil
}
