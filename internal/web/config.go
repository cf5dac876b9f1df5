package web

import (
	"encoding/json"
	"strings"

	"github.com/jask/dualpick/core"
)

// InitConfig is the per-instance configuration handed to the browser side
// widget. Vertical and Filter are only present when true.
type InitConfig struct {
	CustomClass   string             `json:"customClass,omitempty"`
	AllowOrder    bool               `json:"allowOrder"`
	AllowMoveAll  bool               `json:"allowMoveAll"`
	Vertical      bool               `json:"vertical,omitempty"`
	Filter        bool               `json:"filter,omitempty"`
	WorkerScript  string             `json:"workerScript"`
	LocalizedText core.LocalizedText `json:"localizedText"`
}

func NewInitConfig(cfg core.Config) InitConfig {
	w := cfg.Widget
	t := cfg.Text
	return InitConfig{
		CustomClass:  attrText(w.CustomClass),
		AllowOrder:   w.AllowOrder,
		AllowMoveAll: w.AllowMoveAll,
		Vertical:     w.Vertical,
		Filter:       w.Filter,
		WorkerScript: cfg.WorkerScript,
		LocalizedText: core.LocalizedText{
			AddTitle:         attrText(t.AddTitle),
			AddAllTitle:      attrText(t.AddAllTitle),
			RemoveTitle:      attrText(t.RemoveTitle),
			RemoveAllTitle:   attrText(t.RemoveAllTitle),
			MoveUpTitle:      attrText(t.MoveUpTitle),
			MoveDownTitle:    attrText(t.MoveDownTitle),
			ClearFilterTitle: attrText(t.ClearFilterTitle),
		},
	}
}

func (c InitConfig) JSON() (string, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// attrText makes s safe to place in a title attribute: trimmed, double
// quotes turned into single quotes and newlines into spaces.
func attrText(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, `"`, "'")
	return strings.ReplaceAll(s, "\n", " ")
}
