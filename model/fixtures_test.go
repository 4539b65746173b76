package model_test

import (
	"errors"
	"time"

	"github.com/wiryonolau/itseasy-util/model"
	"github.com/wiryonolau/itseasy-util/plugin"
)

type Basic struct {
	model.Base
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Record struct {
	model.Base
	ID               int64     `json:"id"`
	Record           string    `json:"record"`
	Attribute        any       `json:"attribute"`
	TechCreationDate time.Time `json:"tech_creation_date"`
}

func (r *Record) SetAttribute(v any) error {
	obj, err := model.InvokePlugin(r, plugin.NameJSONToObject, v)
	if err != nil {
		return err
	}
	r.Attribute = obj
	return nil
}

func (r *Record) SetTechCreationDate(v any) error {
	t, err := plugin.DateToObject(v)
	if err != nil {
		return err
	}
	r.TechCreationDate = t
	return nil
}

func (r *Record) GetTechCreationDate() string {
	return r.TechCreationDate.Format(plugin.DefaultLayout)
}

// RecordTime reads the record attribute as a time.
func (r *Record) RecordTime() (time.Time, error) {
	v, err := model.InvokePlugin(r, plugin.NameDateToObject, r.Record)
	if err != nil {
		return time.Time{}, err
	}
	return v.(time.Time), nil
}

type Complex struct {
	model.Base
	ID      int64               `json:"id"`
	Name    string              `json:"name"`
	Data    *model.Collection   `json:"data"`
	Options *model.ParameterSet `json:"options"`
	Owner   *Basic              `json:"owner"`
	Secret  string              `model:"secret,protected"`
	hits    int
}

func NewComplex() *Complex {
	return &Complex{
		Data:    model.NewCollection(model.PrototypeOf[Basic]()),
		Options: model.NewParameterSet(),
	}
}

type Triple struct {
	model.Base
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Data any    `json:"data"`
}

var errNegative = errors.New("age must not be negative")

type Person struct {
	model.Base
	Name string `json:"name"`
	Age  int    `json:"age"`
}

func (p *Person) SetAge(v int) error {
	if v < 0 {
		return errNegative
	}
	p.Age = v
	return nil
}

func (p *Person) GetName() string { return "Dr. " + p.Name }

type Node struct {
	model.Base
	Name string `json:"name"`
	Next *Node  `json:"next"`
}

type Tags struct {
	values []string
}

func (t *Tags) ExchangeArray(data any) (any, error) {
	list, ok := data.([]any)
	if !ok {
		return nil, errors.New("tags must be a list")
	}
	old, _ := t.ArrayCopy()
	t.values = nil
	for _, x := range list {
		s, ok := x.(string)
		if !ok {
			return nil, errors.New("tag must be a string")
		}
		t.values = append(t.values, s)
	}
	return old, nil
}

func (t *Tags) ArrayCopy() (any, error) {
	out := make([]any, len(t.values))
	for i, v := range t.values {
		out[i] = v
	}
	return out, nil
}

type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type Post struct {
	model.Base
	Title  string         `json:"title"`
	Tags   *Tags          `json:"tags"`
	Origin Point          `json:"origin"`
	Path   []Point        `json:"path"`
	Marks  map[string]int `json:"marks"`
	At     time.Time      `json:"at"`
}

type Stored struct {
	model.Base
	When time.Time `json:"when"`
}

func (s *Stored) StorageMap() (map[string]any, error) {
	m, err := model.ToMap(s)
	if err != nil {
		return nil, err
	}
	m["when"] = s.When.Format("2006-01-02")
	return m, nil
}

type Restricted struct {
	model.Base
	Value string `json:"value"`
}

func (r *Restricted) AttachedPlugins() *plugin.Registry {
	return plugin.NewRegistry(plugin.New("upper", func(v any, _ ...any) (any, error) {
		s, _ := v.(string)
		return s + "!", nil
	}))
}
