// Package naming turns a classified document's fields into a
// filesystem-safe, length-bounded filename, and de-duplicates it against
// the destination folder.
package naming

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ymatsuda/docfiler/internal/core/domain"
)

// DefaultMaxBase bounds the base name (without extension) in runes so the
// full storage path stays well under common path-length limits.
const DefaultMaxBase = 80

var (
	illegalChars  = regexp.MustCompile(`[\\/:*?"<>|]+`)
	separatorRuns = regexp.MustCompile(`[ _]{2,}`)
)

// Sanitize makes a single token safe for use inside a filename. Illegal
// characters become underscores, line breaks become spaces, and the result
// is trimmed. An empty result stays empty; placeholder substitution is the
// builder's job.
func Sanitize(s string) string {
	s = illegalChars.ReplaceAllString(s, "_")
	s = strings.NewReplacer("\n", " ", "\r", " ").Replace(s)
	return strings.TrimSpace(s)
}

// Builder composes filenames from per-category templates.
type Builder struct {
	templates map[domain.Category]string
	maxBase   int
	now       func() time.Time
}

func NewBuilder() *Builder {
	return &Builder{
		templates: DefaultTemplates(),
		maxBase:   DefaultMaxBase,
		now:       time.Now,
	}
}

// Build returns the base filename for the document, extension included.
// Absent fields resolve to their placeholders and an absent date resolves
// to today, so the result is always non-empty and filesystem-safe.
func (b *Builder) Build(category domain.Category, fields domain.Fields, ext string) string {
	date := fields.Date
	if date == "" {
		date = b.now().Format("20060102")
	}

	addressee := fields.Addressee
	if addressee == "" {
		addressee = fields.Clinic
	}

	repl := strings.NewReplacer(
		tokenCategory, sanitizeOr(string(category), placeholderName),
		tokenPatient, sanitizeOr(fields.Patient, placeholderName),
		tokenDoctor, sanitizeOr(fields.Doctor, placeholderName),
		tokenClinic, sanitizeOr(fields.Clinic, placeholderClinic),
		tokenStaff, sanitizeOr(fields.Staff, placeholderStaff),
		tokenClient, sanitizeOr(fields.Client, placeholderClient),
		tokenClientDept, sanitizeOr(fields.ClientDept, placeholderClientDept),
		tokenAddressee, sanitizeOr(addressee, placeholderClinic),
		tokenDate, date,
		tokenYM, yearMonth(date),
	)

	tpl, ok := b.templates[category]
	if !ok {
		tpl = genericTemplate
	}

	name := repl.Replace(tpl)
	name = separatorRuns.ReplaceAllString(name, "_")
	name = strings.Trim(name, "_ ")
	name = truncate(name, b.maxBase)
	return name + ext
}

func sanitizeOr(s, placeholder string) string {
	if v := Sanitize(s); v != "" {
		return v
	}
	return placeholder
}

// yearMonth renders a YYYYMMDD date as the YYYY年MM月 display token.
func yearMonth(date string) string {
	if len(date) < 6 {
		return date
	}
	return date[:4] + "年" + date[4:6] + "月"
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return strings.TrimRight(string(runes[:max]), "_ ")
}

// ExistsFunc reports whether a file with the given name already exists in
// the folder. It is how the builder asks the destination store about
// collisions without depending on it.
type ExistsFunc func(folder, filename string) (bool, error)

// Uniquify returns a name that does not collide in the folder: the
// filename itself when free, otherwise versioned variants _v2 through _v49,
// and past that a short opaque suffix that needs no further existence
// checks.
func Uniquify(folder, filename string, exists ExistsFunc) (string, error) {
	taken, err := exists(folder, filename)
	if err != nil {
		return "", err
	}
	if !taken {
		return filename, nil
	}

	base, ext := splitExt(filename)
	for i := 2; i < 50; i++ {
		candidate := fmt.Sprintf("%s_v%d%s", base, i, ext)
		taken, err := exists(folder, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}

	id := uuid.New()
	return fmt.Sprintf("%s_%x%s", base, id[:3], ext), nil
}

func splitExt(filename string) (string, string) {
	if i := strings.LastIndexByte(filename, '.'); i > 0 {
		return filename[:i], filename[i:]
	}
	return filename, ""
}
