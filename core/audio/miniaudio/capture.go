package miniaudio

import (
	"fmt"
	"sync"

	"github.com/Dikshant67/voice-scheduling-agent/core/audio"
	"github.com/gen2brain/malgo"
)

// captureFrameSize is the period size in frames; at 16 kHz this is 30 ms
// of audio per callback, small enough for responsive speech detection.
const captureFrameSize = 480

// captureClient pulls mono linear16 microphone audio and hands each frame
// to the registered listener.
type captureClient struct {
	audioContext *malgo.AllocatedContext
	device       *malgo.Device
	config       malgo.DeviceConfig

	onAudio    func(audio []byte)
	listenerMu sync.Mutex

	mu sync.Mutex
}

func (c *captureClient) Init(audioContext *malgo.AllocatedContext) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	format := malgo.FormatS16
	bytesPerFrame := malgo.SampleSizeInBytes(format)

	c.config = malgo.DefaultDeviceConfig(malgo.Capture)
	c.config.SampleRate = uint32(audio.DefaultSampleRate)
	c.config.Capture.Format = format
	c.config.Capture.Channels = 1
	c.config.Alsa.NoMMap = 1
	c.config.PerformanceProfile = malgo.LowLatency
	c.config.PeriodSizeInFrames = captureFrameSize
	c.config.Periods = 3

	c.audioContext = audioContext

	device, err := malgo.InitDevice(c.audioContext.Context, c.config, malgo.DeviceCallbacks{
		Data: func(_, pInput []byte, frameCount uint32) {
			n := int(frameCount) * bytesPerFrame
			if n == 0 || len(pInput) < n {
				return
			}

			// The device thread must never contend on the device mutex,
			// or stopping the device could deadlock.
			c.listenerMu.Lock()
			listener := c.onAudio
			c.listenerMu.Unlock()
			if listener != nil {
				listener(pInput[:n])
			}
		},
	})
	if err != nil {
		return fmt.Errorf("failed to initialize capture device: %w", err)
	}

	c.device = device
	return nil
}

func (c *captureClient) Start(onAudio func(audio []byte)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.device == nil {
		return fmt.Errorf("device not initialized")
	}
	if c.device.IsStarted() {
		return nil
	}

	c.setListener(onAudio)
	if err := c.device.Start(); err != nil {
		c.setListener(nil)
		return fmt.Errorf("failed to start capture device: %w", err)
	}
	return nil
}

func (c *captureClient) setListener(onAudio func(audio []byte)) {
	c.listenerMu.Lock()
	c.onAudio = onAudio
	c.listenerMu.Unlock()
}

func (c *captureClient) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.device == nil {
		return fmt.Errorf("device not initialized")
	}
	if !c.device.IsStarted() {
		return nil
	}

	if err := c.device.Stop(); err != nil {
		return fmt.Errorf("failed to stop capture device: %w", err)
	}
	c.setListener(nil)
	return nil
}

func (c *captureClient) Uninit() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.device != nil {
		c.device.Uninit()
		c.device = nil
	}
	c.setListener(nil)
	return nil
}
