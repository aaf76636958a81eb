package curriculum

import (
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

var (
	ErrUnknownGrade   = errors.New("unknown grade")
	ErrUnknownSubject = errors.New("unknown subject for grade")
	ErrUnknownTopic   = errors.New("unknown topic for subject")
)

// Subject is a subject offered at a grade with its ordered topics.
type Subject struct {
	Name   string   `yaml:"name" json:"name"`
	Topics []string `yaml:"topics" json:"topics"`
}

// Grade is one selectable grade label ("Grade 7", "AP").
type Grade struct {
	Name     string    `json:"name"`
	Level    string    `json:"level"`
	Subjects []Subject `json:"subjects"`
}

// Resource is an external study resource.
type Resource struct {
	Title string `yaml:"title" json:"title"`
	Type  string `yaml:"type" json:"type"`
	URL   string `yaml:"url" json:"url"`
}

// MaterialGroup lists resources for a range of grades.
type MaterialGroup struct {
	Range     string     `yaml:"range" json:"range"`
	Resources []Resource `yaml:"resources" json:"resources"`
}

type levelDoc struct {
	Name     string    `yaml:"name"`
	From     int       `yaml:"from"`
	To       int       `yaml:"to"`
	Label    string    `yaml:"label"`
	Subjects []Subject `yaml:"subjects"`
}

type catalogDoc struct {
	Levels         []levelDoc      `yaml:"levels"`
	StudyMaterials []MaterialGroup `yaml:"study_materials"`
}

// Catalog is the read-only curriculum: grades in display order, their
// subjects and topics, and study materials.
type Catalog struct {
	grades    []Grade
	byName    map[string]int
	materials []MaterialGroup
}

var loadDefault = sync.OnceValues(func() (*Catalog, error) {
	return Parse(catalogYAML)
})

// Load returns the embedded catalog. It is parsed once and shared.
func Load() (*Catalog, error) {
	return loadDefault()
}

// Parse builds a Catalog from YAML. Numbered levels expand to one grade per
// number ("Grade 1" … "Grade 5"); a level with a label becomes one grade.
func Parse(data []byte) (*Catalog, error) {
	var doc catalogDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	c := &Catalog{byName: map[string]int{}, materials: doc.StudyMaterials}
	for _, lvl := range doc.Levels {
		if len(lvl.Subjects) == 0 {
			return nil, fmt.Errorf("level %q has no subjects", lvl.Name)
		}
		for _, s := range lvl.Subjects {
			if len(s.Topics) == 0 {
				return nil, fmt.Errorf("level %q subject %q has no topics", lvl.Name, s.Name)
			}
		}

		var names []string
		switch {
		case lvl.Label != "":
			names = []string{lvl.Label}
		case lvl.From > 0 && lvl.To >= lvl.From:
			for n := lvl.From; n <= lvl.To; n++ {
				names = append(names, fmt.Sprintf("Grade %d", n))
			}
		default:
			return nil, fmt.Errorf("level %q needs a label or a from/to range", lvl.Name)
		}

		for _, name := range names {
			if _, dup := c.byName[name]; dup {
				return nil, fmt.Errorf("grade %q defined twice", name)
			}
			c.byName[name] = len(c.grades)
			c.grades = append(c.grades, Grade{Name: name, Level: lvl.Name, Subjects: lvl.Subjects})
		}
	}
	if len(c.grades) == 0 {
		return nil, errors.New("catalog has no grades")
	}
	return c, nil
}

// Grades returns every grade in display order.
func (c *Catalog) Grades() []Grade {
	return c.grades
}

// GradeNames returns the grade labels in display order.
func (c *Catalog) GradeNames() []string {
	names := make([]string, len(c.grades))
	for i, g := range c.grades {
		names[i] = g.Name
	}
	return names
}

func (c *Catalog) Subjects(grade string) ([]Subject, error) {
	i, ok := c.byName[grade]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGrade, grade)
	}
	return c.grades[i].Subjects, nil
}

func (c *Catalog) Topics(grade, subject string) ([]string, error) {
	subjects, err := c.Subjects(grade)
	if err != nil {
		return nil, err
	}
	for _, s := range subjects {
		if s.Name == subject {
			return s.Topics, nil
		}
	}
	return nil, fmt.Errorf("%w: %q in %q", ErrUnknownSubject, subject, grade)
}

// Validate checks that the grade/subject/topic triple exists.
func (c *Catalog) Validate(grade, subject, topic string) error {
	topics, err := c.Topics(grade, subject)
	if err != nil {
		return err
	}
	for _, t := range topics {
		if t == topic {
			return nil
		}
	}
	return fmt.Errorf("%w: %q in %s %s", ErrUnknownTopic, topic, grade, subject)
}

func (c *Catalog) StudyMaterials() []MaterialGroup {
	return c.materials
}
