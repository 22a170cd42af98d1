package bilingual

import "github.com/goliatone/go-bilingual-cms/content"

// Action is what the editor must do after a save attempt.
type Action string

const (
	ActionSave           Action = "save"
	ActionSwitchLanguage Action = "switch_language"
	ActionFixCurrent     Action = "fix_current"
)

// Verdict is the save-gating decision. Missing and Items describe only the
// gaps the editor is shown in this pass.
type Verdict struct {
	Action  Action       `json:"action"`
	Current content.Lang `json:"current"`
	Target  content.Lang `json:"target,omitempty"`
	Missing []string     `json:"missing"`
	Items   []ItemGap    `json:"items,omitempty"`
}

// Blocked reports whether the save must not proceed.
func (v Verdict) Blocked() bool { return v.Action != ActionSave }

// Check validates doc and applies the gating order: gaps in the opposite
// language are surfaced first, with a prompt to switch to it, and
// current-language gaps are withheld until those are resolved.
func Check(doc map[string]any, current content.Lang, spec FieldSpec) Verdict {
	if !current.Valid() {
		current = content.LangEN
	}
	return Gate(Validate(doc, current, spec), current)
}

// Gate derives the verdict from an existing Result.
func Gate(result Result, current content.Lang) Verdict {
	if result.OppositeIncomplete() {
		return Verdict{
			Action:  ActionSwitchLanguage,
			Current: current,
			Target:  current.Opposite(),
			Missing: append([]string{}, result.MissingOpposite...),
			Items:   append([]ItemGap(nil), result.MissingItems...),
		}
	}
	if len(result.MissingCurrent) > 0 {
		return Verdict{
			Action:  ActionFixCurrent,
			Current: current,
			Missing: append([]string{}, result.MissingCurrent...),
		}
	}
	return Verdict{Action: ActionSave, Current: current, Missing: []string{}}
}
