package autosave

import (
	"github.com/heartmarshall/lexicon-backend/internal/domain"
)

// Draft is the locally edited copy of a word. Its helpers keep definition
// numbers contiguous and refuse to drop a definition's last example, so a
// flushed draft is always in a savable shape.
type Draft struct {
	word domain.Word
}

// NewDraft starts a draft from a stored word.
func NewDraft(w domain.Word) *Draft {
	d := &Draft{word: cloneWord(w)}
	d.word.Renumber()
	return d
}

// Word returns a deep copy of the draft.
func (d *Draft) Word() domain.Word {
	return cloneWord(d.word)
}

func (d *Draft) SetLemma(lemma string) { d.word.Lemma = lemma }

func (d *Draft) SetRoot(root string) { d.word.Root = root }

func (d *Draft) SetStatus(s domain.WordStatus) error {
	if !s.IsValid() {
		return domain.NewValidationError("status", "invalid value")
	}
	d.word.Status = s
	return nil
}

// InsertDefinition inserts def at position at (clamped) and renumbers.
// A definition without examples is rejected.
func (d *Draft) InsertDefinition(at int, def domain.Definition) error {
	if len(def.Examples) == 0 {
		return domain.NewValidationError("example", "at least one example is required")
	}
	d.word.InsertDefinition(at, cloneDefinition(def))
	return nil
}

func (d *Draft) RemoveDefinition(i int) error {
	return d.word.RemoveDefinition(i)
}

// EditDefinition applies fn to the definition at position i. Number and
// Examples changes made by fn are discarded; use the example helpers.
func (d *Draft) EditDefinition(i int, fn func(def *domain.Definition)) error {
	def, err := d.definition(i)
	if err != nil {
		return err
	}
	number, examples := def.Number, def.Examples
	fn(def)
	def.Number, def.Examples = number, examples
	return nil
}

func (d *Draft) AddExample(defIdx int, ex domain.Example) error {
	def, err := d.definition(defIdx)
	if err != nil {
		return err
	}
	def.AddExample(ex)
	return nil
}

// RemoveExample returns domain.ErrLastExample when ex is the only one left.
func (d *Draft) RemoveExample(defIdx, exIdx int) error {
	def, err := d.definition(defIdx)
	if err != nil {
		return err
	}
	return def.RemoveExample(exIdx)
}

func (d *Draft) definition(i int) (*domain.Definition, error) {
	if i < 0 || i >= len(d.word.Definitions) {
		return nil, domain.NewValidationError("definitions", "index out of range")
	}
	return &d.word.Definitions[i], nil
}

func cloneWord(w domain.Word) domain.Word {
	out := w
	if w.Definitions != nil {
		out.Definitions = make([]domain.Definition, len(w.Definitions))
		for i, def := range w.Definitions {
			out.Definitions[i] = cloneDefinition(def)
		}
	}
	return out
}

func cloneDefinition(d domain.Definition) domain.Definition {
	out := d
	out.Categories = cloneStrings(d.Categories)
	out.Styles = cloneStrings(d.Styles)
	out.Expressions = cloneStrings(d.Expressions)
	if d.Examples != nil {
		out.Examples = append([]domain.Example(nil), d.Examples...)
	}
	return out
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}
