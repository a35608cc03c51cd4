package director

import (
	"fmt"
	"slices"

	"github.com/limaJavier/listmoves/pkg/model"
	"github.com/samber/lo"
)

type EventKind int

const (
	BeforeChanged EventKind = iota
	AfterChanged
	BeforeAssigned
	AfterAssigned
	BeforeUnassigned
	AfterUnassigned
)

var eventKindNames = map[EventKind]string{
	BeforeChanged:    "beforeChanged",
	AfterChanged:     "afterChanged",
	BeforeAssigned:   "beforeAssigned",
	AfterAssigned:    "afterAssigned",
	BeforeUnassigned: "beforeUnassigned",
	AfterUnassigned:  "afterUnassigned",
}

func (kind EventKind) String() string {
	return eventKindNames[kind]
}

// Event is one recorded notification. Elements holds a copy of the entity's list at notification time
// for change events, so that ranges can be checked against the real contents.
type Event struct {
	Kind      EventKind
	Entity    model.Entity
	FromIndex int
	ToIndex   int
	Element   model.Value
	Elements  []model.Value
}

func (event Event) String() string {
	switch event.Kind {
	case BeforeChanged, AfterChanged:
		return fmt.Sprintf("%v(%v, %d, %d)", event.Kind, event.Entity, event.FromIndex, event.ToIndex)
	default:
		return fmt.Sprintf("%v(%v)", event.Kind, event.Element)
	}
}

// Recorder is a Director that keeps every notification it receives
type Recorder struct {
	events   []Event
	triggers int
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (recorder *Recorder) Events() []Event {
	return recorder.events
}

// Number of TriggerVariableListeners calls since the last reset
func (recorder *Recorder) Triggers() int {
	return recorder.triggers
}

func (recorder *Recorder) Reset() {
	recorder.events = nil
	recorder.triggers = 0
}

func (recorder *Recorder) BeforeListVariableChanged(variable model.ListVariable, entity model.Entity, fromIndex, toIndex int) {
	recorder.recordChange(BeforeChanged, variable, entity, fromIndex, toIndex)
}

func (recorder *Recorder) AfterListVariableChanged(variable model.ListVariable, entity model.Entity, fromIndex, toIndex int) {
	recorder.recordChange(AfterChanged, variable, entity, fromIndex, toIndex)
}

func (recorder *Recorder) BeforeListVariableElementAssigned(_ model.ListVariable, element model.Value) {
	recorder.events = append(recorder.events, Event{Kind: BeforeAssigned, Element: element})
}

func (recorder *Recorder) AfterListVariableElementAssigned(_ model.ListVariable, element model.Value) {
	recorder.events = append(recorder.events, Event{Kind: AfterAssigned, Element: element})
}

func (recorder *Recorder) BeforeListVariableElementUnassigned(_ model.ListVariable, element model.Value) {
	recorder.events = append(recorder.events, Event{Kind: BeforeUnassigned, Element: element})
}

func (recorder *Recorder) AfterListVariableElementUnassigned(_ model.ListVariable, element model.Value) {
	recorder.events = append(recorder.events, Event{Kind: AfterUnassigned, Element: element})
}

func (recorder *Recorder) TriggerVariableListeners() {
	recorder.triggers++
}

func (recorder *Recorder) recordChange(kind EventKind, variable model.ListVariable, entity model.Entity, fromIndex, toIndex int) {
	recorder.events = append(recorder.events, Event{
		Kind:      kind,
		Entity:    entity,
		FromIndex: fromIndex,
		ToIndex:   toIndex,
		Elements:  slices.Clone(variable.Elements(entity)),
	})
}

var mirroredKinds = map[EventKind]EventKind{
	BeforeChanged:    AfterChanged,
	AfterChanged:     BeforeChanged,
	BeforeAssigned:   AfterUnassigned,
	AfterAssigned:    BeforeUnassigned,
	BeforeUnassigned: AfterAssigned,
	AfterUnassigned:  BeforeAssigned,
}

// Mirror returns the notifications an exact inverse of the recorded mutations must produce: the same
// events in reverse order, with before/after exchanged and assignments turned into unassignments.
// List snapshots are dropped.
func Mirror(events []Event) []Event {
	mirrored := lo.Map(lo.Reverse(slices.Clone(events)), func(event Event, _ int) Event {
		return Event{
			Kind:      mirroredKinds[event.Kind],
			Entity:    event.Entity,
			FromIndex: event.FromIndex,
			ToIndex:   event.ToIndex,
			Element:   event.Element,
		}
	})
	return mirrored
}

// WithoutSnapshots strips the list copies so that event sequences can be compared structurally
func WithoutSnapshots(events []Event) []Event {
	return lo.Map(events, func(event Event, _ int) Event {
		event.Elements = nil
		return event
	})
}
