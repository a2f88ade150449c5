package miniaudio

import (
	"fmt"
	"sync"

	"github.com/Dikshant67/voice-scheduling-agent/core/audio"
	"github.com/gen2brain/malgo"
)

// playbackClient feeds queued reply audio to the playback device. Callers
// can wait for the queue to drain so capture never hears the tail of a
// reply.
type playbackClient struct {
	audioContext *malgo.AllocatedContext
	device       *malgo.Device
	config       malgo.DeviceConfig

	pending []byte
	waiters []drainWaiter

	mu      sync.Mutex
	queueMu sync.Mutex
}

// drainWaiter is released once playback has consumed everything that was
// queued when the waiter registered.
type drainWaiter struct {
	position int
	done     chan struct{}
}

func (c *playbackClient) Init(audioContext *malgo.AllocatedContext) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	sampleRate := uint32(audio.DefaultSampleRate)
	channels := 1
	format := malgo.FormatS16
	bytesPerFrame := malgo.SampleSizeInBytes(format) * channels

	c.config = malgo.DefaultDeviceConfig(malgo.Playback)
	c.config.SampleRate = sampleRate
	c.config.Playback.Format = format
	c.config.Playback.Channels = uint32(channels)
	c.config.Alsa.NoMMap = 1
	c.config.PeriodSizeInFrames = sampleRate / 10 // ~100ms of audio
	c.config.Periods = 4

	c.audioContext = audioContext

	var err error
	if c.device, err = malgo.InitDevice(
		c.audioContext.Context,
		c.config,
		malgo.DeviceCallbacks{Data: c.processAudio(bytesPerFrame)},
	); err != nil {
		return err
	}

	return nil
}

func (c *playbackClient) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.device == nil {
		return fmt.Errorf("device not initialized")
	}

	if err := c.device.Start(); err != nil {
		return fmt.Errorf("failed to start playback device: %w", err)
	}

	return nil
}

func (c *playbackClient) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.device == nil {
		return fmt.Errorf("device not initialized")
	}

	if err := c.device.Stop(); err != nil {
		return fmt.Errorf("failed to stop playback device: %w", err)
	}

	c.ClearBuffer()
	return nil
}

func (c *playbackClient) SendAudio(audio []byte) error {
	if c.device == nil {
		return fmt.Errorf("device not initialized")
	} else if !c.device.IsStarted() {
		return fmt.Errorf("device not started")
	}

	c.queueMu.Lock()
	defer c.queueMu.Unlock()
	c.pending = append(c.pending, audio...)
	return nil
}

// ClearBuffer drops everything still queued. Used for barge-in; waiters
// are released since the dropped audio will never play.
func (c *playbackClient) ClearBuffer() {
	c.queueMu.Lock()
	defer c.queueMu.Unlock()
	c.pending = nil
	c.releaseWaitersLocked(len(c.waiters))
}

// AwaitDrained blocks until everything queued so far has been played or
// discarded.
func (c *playbackClient) AwaitDrained() error {
	c.queueMu.Lock()
	if len(c.pending) == 0 {
		c.queueMu.Unlock()
		return nil
	}
	waiter := drainWaiter{position: len(c.pending), done: make(chan struct{})}
	c.waiters = append(c.waiters, waiter)
	c.queueMu.Unlock()

	<-waiter.done
	return nil
}

func (c *playbackClient) Uninit() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.device == nil {
		return fmt.Errorf("device not initialized")
	}

	c.device.Uninit()
	c.device = nil
	c.ClearBuffer()

	return nil
}

func (c *playbackClient) processAudio(bytesPerFrame int) malgo.DataProc {
	return func(pOutput, _ []byte, frameCount uint32) {
		need := int(frameCount) * bytesPerFrame

		c.queueMu.Lock()
		defer c.queueMu.Unlock()

		if len(c.pending) == 0 {
			return
		}

		consumed := copy(pOutput[:need], c.pending)
		if consumed >= len(c.pending) {
			c.pending = nil
		} else {
			c.pending = c.pending[consumed:]
		}

		released := 0
		for i := range c.waiters {
			c.waiters[i].position -= consumed
			if c.waiters[i].position <= 0 {
				released++
			}
		}
		c.releaseWaitersLocked(released)
	}
}

// releaseWaitersLocked signals the first n waiters; callers hold queueMu.
func (c *playbackClient) releaseWaitersLocked(n int) {
	if n <= 0 {
		return
	}
	if n > len(c.waiters) {
		n = len(c.waiters)
	}
	for _, waiter := range c.waiters[:n] {
		close(waiter.done)
	}
	c.waiters = c.waiters[n:]
}
