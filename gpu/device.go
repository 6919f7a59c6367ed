package gpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	// Import the Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"
)

// Device errors. Both are fatal at startup: the caller should abort with a
// clear message, there is nothing to retry.
var (
	// ErrNoBackend is returned when the Vulkan backend is not compiled in
	// or failed to register.
	ErrNoBackend = errors.New("gpu: vulkan backend not available")

	// ErrNoAdapter is returned when no GPU adapters are found.
	ErrNoAdapter = errors.New("gpu: no GPU adapters found")
)

// Context owns the GPU instance, device and queue. A Context created by
// NewContext owns its resources and releases them in Close; a Context
// created by NewContextWithDevice borrows them and Close only drops the
// references.
type Context struct {
	instance hal.Instance
	device   hal.Device
	queue    hal.Queue
	external bool
}

// NewContext acquires a standalone Vulkan device, preferring a discrete or
// integrated GPU over software adapters.
func NewContext() (*Context, error) {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, ErrNoBackend
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("gpu: create instance: %w", err)
	}

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, ErrNoAdapter
	}

	selected := &adapters[0]
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("gpu: open device: %w", err)
	}

	slogger().Info("gpu: device initialized", "adapter", selected.Info.Name)
	return &Context{
		instance: instance,
		device:   openDev.Device,
		queue:    openDev.Queue,
	}, nil
}

// NewContextWithDevice wraps an externally owned device and queue. The
// caller keeps ownership; Close will not destroy them.
func NewContextWithDevice(device hal.Device, queue hal.Queue) (*Context, error) {
	if device == nil || queue == nil {
		return nil, errors.New("gpu: device and queue must not be nil")
	}
	return &Context{device: device, queue: queue, external: true}, nil
}

// Device returns the HAL device.
func (c *Context) Device() hal.Device { return c.device }

// Queue returns the HAL queue.
func (c *Context) Queue() hal.Queue { return c.queue }

// Close releases the GPU resources the context owns. Safe to call more than
// once.
func (c *Context) Close() {
	if !c.external {
		if c.device != nil {
			c.device.Destroy()
		}
		if c.instance != nil {
			c.instance.Destroy()
		}
	}
	c.device = nil
	c.instance = nil
	c.queue = nil
}
