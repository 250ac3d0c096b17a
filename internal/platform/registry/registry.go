// Package registry describes the record types the API serves: their routes,
// fields, choice lists, and which fields a choice hides. It is filled once at
// startup and read-only afterwards.
package registry

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"

	"github.com/sbarcore/handoff/internal/platform/validation"
)

type FieldKind string

const (
	KindString   FieldKind = "string"
	KindText     FieldKind = "text"
	KindBool     FieldKind = "bool"
	KindDate     FieldKind = "date"
	KindDateTime FieldKind = "datetime"
	KindTime     FieldKind = "time"
	KindUUID     FieldKind = "uuid"
	KindChoice   FieldKind = "choice"
)

type Field struct {
	Name      string    `json:"name"`
	Kind      FieldKind `json:"kind"`
	Required  bool      `json:"required"`
	ReadOnly  bool      `json:"read_only,omitempty"`
	MaxLength int       `json:"max_length,omitempty"`
	// Choices names an entry of Descriptor.Choices.
	Choices string `json:"choices,omitempty"`
	// References names the descriptor a uuid field points at.
	References string      `json:"references,omitempty"`
	Default    interface{} `json:"default,omitempty"`
}

// HiddenRule hides Field whenever When holds one of the values in In.
type HiddenRule struct {
	Field string   `json:"field"`
	When  string   `json:"when"`
	In    []string `json:"in"`
}

type Descriptor struct {
	Name    string                          `json:"name"`
	Label   string                          `json:"label"`
	Path    string                          `json:"path"`
	Fields  []Field                         `json:"fields"`
	Choices map[string]validation.ChoiceSet `json:"choices,omitempty"`
	Hidden  []HiddenRule                    `json:"hidden,omitempty"`
}

// Field returns the named field.
func (d Descriptor) Field(name string) (Field, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// HiddenFields lists the fields hidden when field has value.
func (d Descriptor) HiddenFields(field, value string) []string {
	var out []string
	for _, rule := range d.Hidden {
		if rule.When != field {
			continue
		}
		for _, v := range rule.In {
			if v == value {
				out = append(out, rule.Field)
				break
			}
		}
	}
	return out
}

type Registry struct {
	mu     sync.RWMutex
	byName map[string]Descriptor
	paths  map[string]string
	order  []string
}

func New() *Registry {
	return &Registry{
		byName: make(map[string]Descriptor),
		paths:  make(map[string]string),
	}
}

// Register adds d. Registering a name or path twice, or a descriptor that
// refers to an undeclared choice set, is a programming error and panics.
func (r *Registry) Register(d Descriptor) {
	if err := d.check(); err != nil {
		panic(fmt.Sprintf("registry: %v", err))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, dup := r.byName[d.Name]; dup {
		panic(fmt.Sprintf("registry: %q registered twice", d.Name))
	}
	if other, dup := r.paths[d.Path]; dup {
		panic(fmt.Sprintf("registry: path %q of %q already used by %q", d.Path, d.Name, other))
	}
	r.byName[d.Name] = d
	r.paths[d.Path] = d.Name
	r.order = append(r.order, d.Name)
}

func (d Descriptor) check() error {
	if d.Name == "" || d.Path == "" {
		return fmt.Errorf("descriptor needs a name and a path: %+v", d)
	}
	for _, f := range d.Fields {
		if f.Kind == KindChoice {
			if _, ok := d.Choices[f.Choices]; !ok {
				return fmt.Errorf("%s.%s: unknown choice set %q", d.Name, f.Name, f.Choices)
			}
		}
	}
	for _, h := range d.Hidden {
		if _, ok := d.Field(h.Field); !ok {
			return fmt.Errorf("%s: hidden rule names unknown field %q", d.Name, h.Field)
		}
		if _, ok := d.Field(h.When); !ok {
			return fmt.Errorf("%s: hidden rule depends on unknown field %q", d.Name, h.When)
		}
	}
	return nil
}

func (r *Registry) Get(name string) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.byName[name]
	return d, ok
}

// All returns descriptors in registration order.
func (r *Registry) All() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Descriptor, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byName[name])
	}
	return out
}

// RegisterRoutes mounts GET /schema and GET /schema/:name.
func (r *Registry) RegisterRoutes(g *echo.Group) {
	g.GET("/schema", r.handleList)
	g.GET("/schema/:name", r.handleGet)
}

func (r *Registry) handleList(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{"entities": r.All()})
}

func (r *Registry) handleGet(c echo.Context) error {
	d, ok := r.Get(c.Param("name"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "schema not found")
	}
	return c.JSON(http.StatusOK, d)
}
