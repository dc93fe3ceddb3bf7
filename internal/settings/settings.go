// Package settings opens the health app's data-access settings for this
// application via its URL scheme.
package settings

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
)

// Runner starts an external command and does not wait for it to finish.
type Runner func(ctx context.Context, name string, args ...string) error

// Opener launches a fixed deep link.
type Opener struct {
	url  string
	goos string
	run  Runner
}

// New returns an opener for url using the platform's URL handler.
func New(url string) *Opener {
	return &Opener{url: url, goos: runtime.GOOS, run: startCommand}
}

// URL returns the deep link.
func (o *Opener) URL() string { return o.url }

// Open hands the URL to the platform opener. Only the launch is observed.
func (o *Opener) Open(ctx context.Context) error {
	if o.url == "" {
		return fmt.Errorf("no settings URL configured")
	}
	name, args := o.command()
	if err := o.run(ctx, name, args...); err != nil {
		return fmt.Errorf("open %s: %w", o.url, err)
	}
	return nil
}

func (o *Opener) command() (string, []string) {
	switch o.goos {
	case "darwin":
		return "open", []string{o.url}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", o.url}
	default:
		return "xdg-open", []string{o.url}
	}
}

// startCommand detaches the opener from ctx once it has started.
func startCommand(ctx context.Context, name string, args ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := exec.LookPath(name)
	if err != nil {
		return err
	}
	cmd := exec.Command(path, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go cmd.Wait()
	return nil
}
