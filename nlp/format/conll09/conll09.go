// Package conll09 reads and writes the CoNLL-2009 shared task format: one
// token per line, blank lines between sentences, and one APRED column per
// predicate of the sentence.
package conll09

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	nlp "spinach/nlp/types"

	"github.com/spf13/cast"
)

const (
	FIELD_SEPARATOR = "\t"
	NUM_FIELDS      = 14
	EMPTY_FIELD     = "_"
	FILL_PRED       = "Y"
)

// UsePredicted builds tokens from the PLEMMA, PPOS, PHEAD and PDEPREL columns
// instead of the gold ones.
var UsePredicted bool

var (
	ErrNumFields   = errors.New("wrong number of fields")
	ErrNumAPreds   = errors.New("APRED columns do not match predicates")
	ErrReservedTag = errors.New("reserved role in APRED column")
)

type Row struct {
	ID       int
	Form     string
	Lemma    string
	PLemma   string
	POS      string
	PPOS     string
	Feat     string
	PFeat    string
	Head     int
	PHead    int
	DepRel   string
	PDepRel  string
	FillPred bool
	Pred     string
	APreds   []string
}

func formatString(s string) string {
	if len(s) == 0 {
		return EMPTY_FIELD
	}
	return s
}

func (r Row) String() string {
	fillPred := EMPTY_FIELD
	if r.FillPred {
		fillPred = FILL_PRED
	}
	fields := []string{
		fmt.Sprintf("%d", r.ID),
		formatString(r.Form),
		formatString(r.Lemma),
		formatString(r.PLemma),
		formatString(r.POS),
		formatString(r.PPOS),
		formatString(r.Feat),
		formatString(r.PFeat),
		fmt.Sprintf("%d", r.Head),
		fmt.Sprintf("%d", r.PHead),
		formatString(r.DepRel),
		formatString(r.PDepRel),
		fillPred,
		formatString(r.Pred),
	}
	for _, apred := range r.APreds {
		fields = append(fields, formatString(apred))
	}
	return strings.Join(fields, FIELD_SEPARATOR)
}

type Sentence []Row

type Sentences []Sentence

// NumPredicates counts rows marked with FILLPRED.
func (s Sentence) NumPredicates() int {
	var n int
	for _, r := range s {
		if r.FillPred {
			n++
		}
	}
	return n
}

func ParseInt(value string) (int, error) {
	if value == EMPTY_FIELD {
		return 0, nil
	}
	return cast.ToIntE(value)
}

func ParseString(value string) string {
	if value == EMPTY_FIELD {
		return ""
	}
	return value
}

func ParseRow(record []string) (Row, error) {
	var (
		row Row
		err error
	)
	if len(record) < NUM_FIELDS {
		return row, fmt.Errorf("%w: %d < %d", ErrNumFields, len(record), NUM_FIELDS)
	}
	if row.ID, err = cast.ToIntE(record[0]); err != nil {
		return row, fmt.Errorf("error parsing ID field (%s): %w", record[0], err)
	}
	row.Form = record[1]
	row.Lemma = ParseString(record[2])
	row.PLemma = ParseString(record[3])
	row.POS = ParseString(record[4])
	row.PPOS = ParseString(record[5])
	row.Feat = ParseString(record[6])
	row.PFeat = ParseString(record[7])
	if row.Head, err = ParseInt(record[8]); err != nil {
		return row, fmt.Errorf("error parsing HEAD field (%s): %w", record[8], err)
	}
	if row.PHead, err = ParseInt(record[9]); err != nil {
		return row, fmt.Errorf("error parsing PHEAD field (%s): %w", record[9], err)
	}
	row.DepRel = ParseString(record[10])
	row.PDepRel = ParseString(record[11])
	row.FillPred = record[12] == FILL_PRED
	row.Pred = ParseString(record[13])
	row.APreds = make([]string, 0, len(record)-NUM_FIELDS)
	for _, apred := range record[NUM_FIELDS:] {
		row.APreds = append(row.APreds, ParseString(apred))
	}
	return row, nil
}

func validate(sent Sentence) error {
	numPreds := sent.NumPredicates()
	for _, r := range sent {
		if len(r.APreds) != numPreds {
			return fmt.Errorf("%w: token %d has %d, sentence has %d predicates", ErrNumAPreds, r.ID, len(r.APreds), numPreds)
		}
	}
	return nil
}

// Read parses up to limit sentences (all when limit <= 0). Errors carry the
// 1-based line number of the offending row.
func Read(reader io.Reader, limit int) (Sentences, error) {
	var (
		sentences   Sentences
		currentSent Sentence
		line        int
		sentStart   int
	)
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 16384), 1<<20)
	flush := func() error {
		if len(currentSent) == 0 {
			return nil
		}
		if err := validate(currentSent); err != nil {
			return fmt.Errorf("error processing sentence at line %d: %w", sentStart, err)
		}
		sentences = append(sentences, currentSent)
		currentSent = nil
		return nil
	}
	for scanner.Scan() {
		line++
		curLine := strings.TrimRight(scanner.Text(), "\r")
		if len(strings.TrimSpace(curLine)) == 0 {
			if err := flush(); err != nil {
				return nil, err
			}
			if limit > 0 && len(sentences) >= limit {
				return sentences, nil
			}
			continue
		}
		if curLine[0] == '#' {
			continue
		}
		row, err := ParseRow(strings.Split(curLine, FIELD_SEPARATOR))
		if err != nil {
			return nil, fmt.Errorf("error processing record at line %d: %w", line, err)
		}
		if len(currentSent) == 0 {
			sentStart = line
		}
		if row.ID != len(currentSent)+1 {
			return nil, fmt.Errorf("error processing record at line %d: ID %d out of sequence", line, row.ID)
		}
		currentSent = append(currentSent, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if err := flush(); err != nil {
		return nil, err
	}
	if limit > 0 && len(sentences) > limit {
		sentences = sentences[:limit]
	}
	return sentences, nil
}

func ReadFile(filename string, limit int) (Sentences, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Read(file, limit)
}

func rowToken(r Row) nlp.Token {
	if UsePredicted {
		return nlp.Token{Form: r.Form, Lemma: r.PLemma, POS: r.PPOS, DepRel: r.PDepRel, Index: r.ID - 1, Head: r.PHead - 1}
	}
	return nlp.Token{Form: r.Form, Lemma: r.Lemma, POS: r.POS, DepRel: r.DepRel, Index: r.ID - 1, Head: r.Head - 1}
}

// Sentence2Frame builds the tree and the gold annotation of sent. APRED
// column i holds the arguments of the i-th FILLPRED row.
func Sentence2Frame(sent Sentence) (*nlp.FrameAnnotation, error) {
	if err := validate(sent); err != nil {
		return nil, err
	}
	tree := nlp.NewDependencyTree(len(sent))
	for _, r := range sent {
		tree.Append(rowToken(r))
	}
	if err := tree.Validate(); err != nil {
		return nil, err
	}
	frame := nlp.NewFrameAnnotation(tree)
	var predicates []nlp.Token
	for _, r := range sent {
		if !r.FillPred {
			continue
		}
		p := tree.Token(r.ID - 1)
		predicates = append(predicates, p)
		frame.AddPredicate(p)
		if len(r.Pred) > 0 {
			frame.SetSense(p, r.Pred)
		}
	}
	for _, r := range sent {
		for i, role := range r.APreds {
			if len(role) == 0 {
				continue
			}
			if role == nlp.NilRole {
				return nil, fmt.Errorf("%w: token %d", ErrReservedTag, r.ID)
			}
			frame.AddArgument(predicates[i], tree.Token(r.ID-1), role)
		}
	}
	return frame, nil
}

// ReadCorpus reads a CoNLL-2009 file into its rows and their gold frames.
func ReadCorpus(filename string, limit int) (Sentences, []*nlp.FrameAnnotation, error) {
	sents, err := ReadFile(filename, limit)
	if err != nil {
		return nil, nil, err
	}
	frames := make([]*nlp.FrameAnnotation, len(sents))
	for i, sent := range sents {
		if frames[i], err = Sentence2Frame(sent); err != nil {
			return nil, nil, fmt.Errorf("sentence %d of %s: %w", i+1, filename, err)
		}
	}
	return sents, frames, nil
}

// ParseCorpus reads a CoNLL-2009 file into gold frames.
func ParseCorpus(filename string, limit int) ([]*nlp.FrameAnnotation, error) {
	_, frames, err := ReadCorpus(filename, limit)
	return frames, err
}

// Frame2Sentence writes frame into new rows built from its tokens; the gold
// and predicted columns carry the same values. Use Annotate to keep the
// columns of a sentence that was read.
func Frame2Sentence(frame *nlp.FrameAnnotation) Sentence {
	var predicates []nlp.Token
	seen := make(map[nlp.Token]bool)
	for _, p := range frame.Predicates() {
		if !seen[p] {
			seen[p] = true
			predicates = append(predicates, p)
		}
	}
	sent := make(Sentence, frame.Tree.Len())
	for i, t := range frame.Tree.Tokens() {
		row := Row{
			ID:       t.Index + 1,
			Form:     t.Form,
			Lemma:    t.Lemma,
			PLemma:   t.Lemma,
			POS:      t.POS,
			PPOS:     t.POS,
			Head:     t.Head + 1,
			PHead:    t.Head + 1,
			DepRel:   t.DepRel,
			PDepRel:  t.DepRel,
			FillPred: seen[t],
			APreds:   make([]string, len(predicates)),
		}
		if row.FillPred {
			if sense, exists := frame.SenseOf(t); exists {
				row.Pred = sense
			} else {
				row.Pred = t.Lemma
			}
		}
		for j, p := range predicates {
			row.APreds[j], _ = frame.RoleOf(p, t)
		}
		sent[i] = row
	}
	return sent
}

// Annotate returns a copy of sent whose FILLPRED, PRED and APRED columns hold
// the predicates and roles of frame; all other columns are kept. Rows and
// tokens are matched by position.
func Annotate(sent Sentence, frame *nlp.FrameAnnotation) (Sentence, error) {
	if len(sent) != frame.Tree.Len() {
		return nil, fmt.Errorf("sentence has %d rows, frame has %d tokens", len(sent), frame.Tree.Len())
	}
	var predicates []nlp.Token
	isPredicate := make(map[int]bool)
	for _, p := range frame.Predicates() {
		if !isPredicate[p.Index] {
			isPredicate[p.Index] = true
			predicates = append(predicates, p)
		}
	}
	annotated := make(Sentence, len(sent))
	for i, row := range sent {
		t := frame.Tree.Token(i)
		var pred string
		if isPredicate[i] {
			pred = t.Lemma
			if row.FillPred && len(row.Pred) > 0 {
				pred = row.Pred
			}
			if sense, exists := frame.SenseOf(t); exists {
				pred = sense
			}
		}
		row.FillPred, row.Pred = isPredicate[i], pred
		row.APreds = make([]string, len(predicates))
		for j, p := range predicates {
			row.APreds[j], _ = frame.RoleOf(p, t)
		}
		annotated[i] = row
	}
	return annotated, nil
}

func AnnotateAll(sents Sentences, frames []*nlp.FrameAnnotation) (Sentences, error) {
	if len(sents) != len(frames) {
		return nil, fmt.Errorf("got %d sentences and %d frames", len(sents), len(frames))
	}
	annotated := make(Sentences, len(sents))
	for i := range sents {
		var err error
		if annotated[i], err = Annotate(sents[i], frames[i]); err != nil {
			return nil, fmt.Errorf("sentence %d: %w", i+1, err)
		}
	}
	return annotated, nil
}

func Frames2Sentences(frames []*nlp.FrameAnnotation) Sentences {
	sents := make(Sentences, len(frames))
	for i, frame := range frames {
		sents[i] = Frame2Sentence(frame)
	}
	return sents
}

func Write(writer io.Writer, sents Sentences) error {
	bufWriter := bufio.NewWriter(writer)
	for _, sent := range sents {
		for _, row := range sent {
			if _, err := bufWriter.WriteString(row.String() + "\n"); err != nil {
				return err
			}
		}
		if err := bufWriter.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bufWriter.Flush()
}

func WriteFile(filename string, sents Sentences) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()
	return Write(file, sents)
}
