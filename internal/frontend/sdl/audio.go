package sdl

import (
	"fmt"

	"github.com/retroenv/retrochip8/internal/frontend/tone"
	"github.com/veandco/go-sdl2/sdl"
)

const (
	sampleRate = 44100
	// queueAhead is the number of samples kept queued while the tone plays,
	// a bit more than two frames at 60 frames per second.
	queueAhead = sampleRate / 25
)

// audio queues square wave samples to a SDL audio device.
type audio struct {
	device sdl.AudioDeviceID
	wave   *tone.Square
	on     bool

	queued func(sdl.AudioDeviceID) uint32
	queue  func(sdl.AudioDeviceID, []byte) error
}

func newAudio(device sdl.AudioDeviceID) *audio {
	return &audio{
		device: device,
		wave:   tone.NewSquare(sampleRate, tone.DefaultFrequency, tone.DefaultVolume),
		queued: sdl.GetQueuedAudioSize,
		queue:  sdl.QueueAudio,
	}
}

func openAudio() (*audio, error) {
	want := &sdl.AudioSpec{
		Freq:     sampleRate,
		Format:   sdl.AUDIO_U8,
		Channels: 1,
		Samples:  512,
	}
	device, err := sdl.OpenAudioDevice("", false, want, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("opening audio device: %w", err)
	}

	return newAudio(device), nil
}

func (a *audio) enable(on bool) error {
	a.on = on
	if !on {
		sdl.ClearQueuedAudio(a.device)
		sdl.PauseAudioDevice(a.device, true)
		return nil
	}
	err := a.fill()
	sdl.PauseAudioDevice(a.device, false)
	return err
}

// fill tops up the queue, it is called once per frame.
func (a *audio) fill() error {
	if !a.on {
		return nil
	}
	queued := int(a.queued(a.device))
	if queued >= queueAhead {
		return nil
	}
	if err := a.queue(a.device, a.wave.Samples(queueAhead-queued)); err != nil {
		return fmt.Errorf("queueing %d samples: %w", queueAhead-queued, err)
	}
	return nil
}

func (a *audio) close() {
	sdl.CloseAudioDevice(a.device)
}
