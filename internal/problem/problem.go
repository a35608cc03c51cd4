// Package problem holds a small vehicle routing domain: vehicles own an ordered route of visits, which is
// the list planning variable the move engine works on.
package problem

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"slices"

	"github.com/limaJavier/listmoves/pkg/model"
	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
)

type RawVisit struct {
	Id   uint64
	Name string
	X    float64
	Y    float64
}

type RawVehicle struct {
	Id         uint64
	Name       string
	X          float64
	Y          float64
	Route      []uint64
	PinToIndex int
	Pinned     bool
	Accepts    []uint64 // Empty means every visit
}

type RawProblemInput struct {
	Name              string
	AllowsUnassigned  bool
	UnassignedPenalty float64
	Visits            []RawVisit
	Vehicles          []RawVehicle
}

type Visit struct {
	Id   uint64
	Name string
	X    float64
	Y    float64
}

func (visit *Visit) String() string {
	return visit.Name
}

type Vehicle struct {
	Id         uint64
	Name       string
	X          float64
	Y          float64
	Route      []model.Value
	PinToIndex int
	Pinned     bool
	Accepts    []model.Value
}

func (vehicle *Vehicle) String() string {
	return vehicle.Name
}

type Problem struct {
	Name              string
	AllowsUnassigned  bool
	UnassignedPenalty float64
	Visits            []*Visit
	Vehicles          []*Vehicle
	Variable          model.ListVariable
	Solution          *model.Solution
}

// Route is the printable state of one vehicle
type Route struct {
	Vehicle  string   `json:"vehicle"`
	Visits   []string `json:"visits"`
	Distance float64  `json:"distance"`
}

func FromJson(file string) (*Problem, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("cannot read problem file \"%v\": %w", file, err)
	}
	return FromBytes(bytes)
}

func FromBytes(bytes []byte) (*Problem, error) {
	var inputJson map[string]any
	if err := json.Unmarshal(bytes, &inputJson); err != nil {
		return nil, fmt.Errorf("cannot parse problem: %w", err)
	}

	var rawInput RawProblemInput
	if err := mapstructure.Decode(inputJson, &rawInput); err != nil {
		return nil, fmt.Errorf("cannot decode problem: %w", err)
	}
	return ProcessRawInput(rawInput)
}

func ProcessRawInput(rawInput RawProblemInput) (*Problem, error) {
	if len(rawInput.Vehicles) == 0 {
		return nil, fmt.Errorf("problem \"%v\" has no vehicles", rawInput.Name)
	}

	//** Visits
	visits := make([]*Visit, 0, len(rawInput.Visits))
	visitsById := make(map[uint64]*Visit, len(rawInput.Visits))
	for _, rawVisit := range rawInput.Visits {
		if _, ok := visitsById[rawVisit.Id]; ok {
			return nil, fmt.Errorf("visit id %v is used more than once", rawVisit.Id)
		}
		visit := &Visit{Id: rawVisit.Id, Name: rawVisit.Name, X: rawVisit.X, Y: rawVisit.Y}
		if visit.Name == "" {
			visit.Name = fmt.Sprintf("visit-%v", visit.Id)
		}
		visits = append(visits, visit)
		visitsById[visit.Id] = visit
	}
	lookup := func(owner string, ids []uint64) ([]model.Value, error) {
		values := make([]model.Value, 0, len(ids))
		for _, id := range ids {
			visit, ok := visitsById[id]
			if !ok {
				return nil, fmt.Errorf("vehicle \"%v\" references unknown visit id %v", owner, id)
			}
			values = append(values, visit)
		}
		return values, nil
	}

	//** Vehicles
	vehicles := make([]*Vehicle, 0, len(rawInput.Vehicles))
	owners := make(map[*Visit]*Vehicle)
	vehicleIds := make(map[uint64]bool)
	for _, rawVehicle := range rawInput.Vehicles {
		if vehicleIds[rawVehicle.Id] {
			return nil, fmt.Errorf("vehicle id %v is used more than once", rawVehicle.Id)
		}
		vehicleIds[rawVehicle.Id] = true

		vehicle := &Vehicle{
			Id:         rawVehicle.Id,
			Name:       rawVehicle.Name,
			X:          rawVehicle.X,
			Y:          rawVehicle.Y,
			PinToIndex: rawVehicle.PinToIndex,
			Pinned:     rawVehicle.Pinned,
		}
		if vehicle.Name == "" {
			vehicle.Name = fmt.Sprintf("vehicle-%v", vehicle.Id)
		}

		route, err := lookup(vehicle.Name, rawVehicle.Route)
		if err != nil {
			return nil, err
		}
		accepts, err := lookup(vehicle.Name, rawVehicle.Accepts)
		if err != nil {
			return nil, err
		}
		if len(accepts) == 0 {
			accepts = lo.Map(visits, func(visit *Visit, _ int) model.Value { return visit })
		}
		vehicle.Route, vehicle.Accepts = route, accepts

		for _, value := range route {
			visit := value.(*Visit)
			if owner, ok := owners[visit]; ok {
				return nil, fmt.Errorf("visit \"%v\" is in the routes of both \"%v\" and \"%v\"", visit, owner, vehicle)
			}
			owners[visit] = vehicle
			if !slices.Contains(accepts, value) {
				return nil, fmt.Errorf("visit \"%v\" is in the route of \"%v\" which does not accept it", visit, vehicle)
			}
		}
		if vehicle.PinToIndex < 0 || vehicle.PinToIndex > len(route) {
			return nil, fmt.Errorf("vehicle \"%v\" pins %v visits but its route only has %v", vehicle, vehicle.PinToIndex, len(route))
		}
		vehicles = append(vehicles, vehicle)
	}

	if !rawInput.AllowsUnassigned {
		if unassigned, ok := lo.Find(visits, func(visit *Visit) bool { return owners[visit] == nil }); ok {
			return nil, fmt.Errorf("visit \"%v\" is in no route but problem \"%v\" does not allow unassigned visits", unassigned, rawInput.Name)
		}
	}

	problem := &Problem{
		Name:              rawInput.Name,
		AllowsUnassigned:  rawInput.AllowsUnassigned,
		UnassignedPenalty: rawInput.UnassignedPenalty,
		Visits:            visits,
		Vehicles:          vehicles,
	}
	problem.bind()
	return problem, nil
}

// Builds the list variable and the solution view over the problem's own vehicles and visits
func (problem *Problem) bind() {
	restricted := lo.SomeBy(problem.Vehicles, func(vehicle *Vehicle) bool { return len(vehicle.Accepts) < len(problem.Visits) })

	descriptor := model.ListVariableDescriptor{
		Name:             "route",
		Get:              func(entity model.Entity) []model.Value { return entity.(*Vehicle).Route },
		Set:              func(entity model.Entity, elements []model.Value) { entity.(*Vehicle).Route = elements },
		PinnedEntity:     func(entity model.Entity) bool { return entity.(*Vehicle).Pinned },
		PinToIndex:       func(entity model.Entity) int { return entity.(*Vehicle).PinToIndex },
		AllowsUnassigned: problem.AllowsUnassigned,
	}
	if restricted {
		descriptor.ValueRange = func(entity model.Entity) []model.Value { return entity.(*Vehicle).Accepts }
	}

	problem.Variable = model.NewListVariable(descriptor)
	problem.Solution = &model.Solution{
		Variable: problem.Variable,
		Entities: lo.Map(problem.Vehicles, func(vehicle *Vehicle, _ int) model.Entity { return vehicle }),
		Values:   lo.Map(problem.Visits, func(visit *Visit, _ int) model.Value { return visit }),
	}
}

// Clone returns an independent working copy of the problem together with the rebaser that maps
// the vehicles and visits of this problem onto their copies
func (problem *Problem) Clone() (*Problem, model.Rebaser) {
	counterparts := make(map[any]any, len(problem.Visits)+len(problem.Vehicles))
	visits := lo.Map(problem.Visits, func(visit *Visit, _ int) *Visit {
		copied := *visit
		counterparts[visit] = &copied
		return &copied
	})
	rebaseAll := func(values []model.Value) []model.Value {
		return lo.Map(values, func(value model.Value, _ int) model.Value { return counterparts[value] })
	}
	vehicles := lo.Map(problem.Vehicles, func(vehicle *Vehicle, _ int) *Vehicle {
		copied := *vehicle
		copied.Route = rebaseAll(vehicle.Route)
		copied.Accepts = rebaseAll(vehicle.Accepts)
		counterparts[vehicle] = &copied
		return &copied
	})

	clone := &Problem{
		Name:              problem.Name,
		AllowsUnassigned:  problem.AllowsUnassigned,
		UnassignedPenalty: problem.UnassignedPenalty,
		Visits:            visits,
		Vehicles:          vehicles,
	}
	clone.bind()
	return clone, model.NewLookupRebaser(counterparts)
}

// Distance is the total euclidean length of every route (depot, visits, back to depot) plus the
// penalty of each unassigned visit. Its signature matches construction.CostFunction.
func (problem *Problem) Distance(solution *model.Solution) float64 {
	total, assigned := 0.0, 0
	for _, entity := range solution.Entities {
		route := solution.Variable.Elements(entity)
		total += routeDistance(entity.(*Vehicle), route)
		assigned += len(route)
	}
	return total + float64(len(solution.Values)-assigned)*problem.UnassignedPenalty
}

func routeDistance(vehicle *Vehicle, route []model.Value) float64 {
	distance := 0.0
	x, y := vehicle.X, vehicle.Y
	for _, value := range route {
		visit := value.(*Visit)
		distance += math.Hypot(visit.X-x, visit.Y-y)
		x, y = visit.X, visit.Y
	}
	if len(route) > 0 {
		distance += math.Hypot(vehicle.X-x, vehicle.Y-y)
	}
	return distance
}

func (problem *Problem) Routes() []Route {
	return lo.Map(problem.Vehicles, func(vehicle *Vehicle, _ int) Route {
		return Route{
			Vehicle:  vehicle.Name,
			Visits:   lo.Map(vehicle.Route, func(value model.Value, _ int) string { return value.(*Visit).Name }),
			Distance: routeDistance(vehicle, vehicle.Route),
		}
	})
}

// Names of the visits that are in no route
func (problem *Problem) Unassigned() []string {
	assigned := make(map[model.Value]bool)
	for _, vehicle := range problem.Vehicles {
		for _, value := range vehicle.Route {
			assigned[value] = true
		}
	}
	unassigned := lo.Filter(problem.Visits, func(visit *Visit, _ int) bool { return !assigned[visit] })
	return lo.Map(unassigned, func(visit *Visit, _ int) string { return visit.Name })
}
