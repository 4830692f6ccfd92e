package api

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
)

// Target receives console commands on the render thread; *vcr.Effect
// satisfies it
type Target interface {
	Enable()
	Disable()
	Toggle()
	Reset()
	SetMode(mode int)
	SetQuality(level int)
	SetBattery(level float32)
	ForceDistortion()
	ForceCCTV()
	ForceStatic()
	ForceTapeDamage()
}

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrQueueFull      = errors.New("command queue full")
)

// Command is a parsed console request waiting for the render loop
type Command struct {
	Name  string
	Value string
	apply func(Target)
}

// Apply runs the command against a target
func (c Command) Apply(t Target) {
	c.apply(t)
}

type commandParser func(value string) (func(Target), error)

func noValue(fn func(Target)) commandParser {
	return func(string) (func(Target), error) {
		return fn, nil
	}
}

func intValue(fn func(Target, int)) commandParser {
	return func(value string) (func(Target), error) {
		i, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("value %q is not an integer", value)
		}
		return func(t Target) { fn(t, i) }, nil
	}
}

func floatValue(fn func(Target, float32)) commandParser {
	return func(value string) (func(Target), error) {
		f, err := strconv.ParseFloat(value, 32)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("value %q is not a number", value)
		}
		return func(t Target) { fn(t, float32(f)) }, nil
	}
}

var commands = map[string]commandParser{
	"enable":      noValue(Target.Enable),
	"disable":     noValue(Target.Disable),
	"toggle":      noValue(Target.Toggle),
	"reset":       noValue(Target.Reset),
	"distortion":  noValue(Target.ForceDistortion),
	"cctv":        noValue(Target.ForceCCTV),
	"static":      noValue(Target.ForceStatic),
	"tape_damage": noValue(Target.ForceTapeDamage),
	"mode":        intValue(Target.SetMode),
	"quality":     intValue(Target.SetQuality),
	"battery":     floatValue(Target.SetBattery),
}

// ParseCommand validates a command and its argument
func ParseCommand(name, value string) (Command, error) {
	parse, ok := commands[name]
	if !ok {
		return Command{}, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	apply, err := parse(value)
	if err != nil {
		return Command{}, fmt.Errorf("bad value for %s: %v", name, err)
	}
	return Command{Name: name, Value: value, apply: apply}, nil
}

// CommandNames lists the accepted commands
func CommandNames() []string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
