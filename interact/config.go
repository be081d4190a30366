package interact

import (
	"fmt"
	"log"
	"time"

	"github.com/bloodmagesoftware/gardenplan/hittest"
)

// Config holds the tuning values of the interaction state machine.
// Lengths are world pixels unless noted otherwise.
type Config struct {
	HitTest hittest.Config `yaml:"hit_test"`
	// MinElementSize is the smallest width or height a resize can produce.
	MinElementSize float64 `yaml:"min_element_size"`
	// MinShapeSize is the extent a drawn shape must exceed to be kept.
	MinShapeSize float64 `yaml:"min_shape_size"`
	// PathSampleDistance is the minimum distance between recorded freehand points.
	PathSampleDistance float64 `yaml:"path_sample_distance"`
	// SnapMeters is the snapping step in meters.
	SnapMeters float64 `yaml:"snap_meters"`
	// NudgeStep and NudgeStepLarge are the arrow key steps without and with Shift.
	NudgeStep      float64 `yaml:"nudge_step"`
	NudgeStepLarge float64 `yaml:"nudge_step_large"`
	// DuplicateOffset is how far duplicated elements are moved.
	DuplicateOffset float64 `yaml:"duplicate_offset"`
	// PathLengthMeters is the length of a clicked path when the catalog gives none.
	PathLengthMeters float64 `yaml:"path_length_meters"`
	// FitPadding is the screen margin kept by zoom to fit.
	FitPadding float64 `yaml:"fit_padding"`
	// FrameInterval is the minimum time between coalesced updates.
	FrameInterval time.Duration `yaml:"frame_interval"`
}

// DefaultConfig returns the tuned defaults.
func DefaultConfig() Config {
	return Config{
		HitTest:            hittest.DefaultConfig(),
		MinElementSize:     20,
		MinShapeSize:       10,
		PathSampleDistance: 5,
		SnapMeters:         1,
		NudgeStep:          10,
		NudgeStepLarge:     50,
		DuplicateOffset:    50,
		PathLengthMeters:   5,
		FitPadding:         50,
		FrameInterval:      DefaultFrameInterval,
	}
}

// Level is the severity of a notification.
type Level int

const (
	LevelInfo Level = iota
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	}
	return "info"
}

// Notifier receives user facing messages such as placement warnings.
type Notifier interface {
	Notify(level Level, msg string)
}

// LogNotifier writes notifications to the standard logger.
type LogNotifier struct{}

func (LogNotifier) Notify(level Level, msg string) {
	log.Printf("%s: %s", level, msg)
}

func (m *Machine) notifyf(level Level, format string, args ...any) {
	if m.notifier != nil {
		m.notifier.Notify(level, fmt.Sprintf(format, args...))
	}
}
