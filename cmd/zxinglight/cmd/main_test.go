package cmd_test

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cucumber/godog"
	zxinggo "github.com/ericlevine/zxinggo"

	"github.com/thotypous/zxinglight/cmd/zxinglight/cmd"
	"github.com/thotypous/zxinglight/internal/testimage"
)

// scanContext is the state of one scenario.
type scanContext struct {
	dir    string
	env    map[string]*string
	stdout bytes.Buffer
	stderr bytes.Buffer
	status int
}

func (s *scanContext) reset() error {
	dir, err := os.MkdirTemp("", "zxinglight-feature-")
	if err != nil {
		return err
	}
	*s = scanContext{dir: dir, env: map[string]*string{}}
	return nil
}

func (s *scanContext) cleanup() error {
	for key, old := range s.env {
		if old == nil {
			os.Unsetenv(key)
		} else {
			os.Setenv(key, *old)
		}
	}
	return os.RemoveAll(s.dir)
}

func (s *scanContext) writeImage(name string, draw func(c *testimage.Canvas) error) error {
	c := testimage.New(640, 300)
	if err := draw(c); err != nil {
		return err
	}
	return c.WritePNG(filepath.Join(s.dir, name))
}

func (s *scanContext) aQRCode(name, text string) error {
	return s.writeImage(name, func(c *testimage.Canvas) error {
		_, err := c.Symbol(text, zxinggo.FormatQRCode, 200, 200, image.Pt(220, 50))
		return err
	})
}

func (s *scanContext) aCode128(name, text string) error {
	return s.writeImage(name, func(c *testimage.Canvas) error {
		_, err := c.Symbol(text, zxinggo.FormatCode128, 300, 100, image.Pt(170, 100))
		return err
	})
}

func (s *scanContext) aCode128AndQRCode(name, linear, matrix string) error {
	return s.writeImage(name, func(c *testimage.Canvas) error {
		if _, err := c.Symbol(linear, zxinggo.FormatCode128, 300, 100, image.Pt(20, 100)); err != nil {
			return err
		}
		_, err := c.Symbol(matrix, zxinggo.FormatQRCode, 200, 200, image.Pt(400, 50))
		return err
	})
}

func (s *scanContext) aBlankImage(name string) error {
	return s.writeImage(name, func(*testimage.Canvas) error { return nil })
}

func (s *scanContext) aFile(name, contents string) error {
	return os.WriteFile(filepath.Join(s.dir, name), []byte(contents+"\n"), 0o600)
}

func (s *scanContext) theEnvironmentVariable(key, value string) error {
	if _, saved := s.env[key]; !saved {
		if old, ok := os.LookupEnv(key); ok {
			s.env[key] = &old
		} else {
			s.env[key] = nil
		}
	}
	return os.Setenv(key, value)
}

func (s *scanContext) iRun(args string) error {
	args = strings.ReplaceAll(args, "{dir}", s.dir)
	s.status = cmd.Run(strings.Fields(args), &s.stdout, &s.stderr)
	return nil
}

func (s *scanContext) theCommandShouldSucceed() error {
	if s.status != 0 {
		return fmt.Errorf("exit status %d, stderr:\n%s", s.status, s.stderr.String())
	}
	return nil
}

func (s *scanContext) theCommandShouldFail() error {
	if s.status == 0 {
		return fmt.Errorf("command succeeded, stdout:\n%s", s.stdout.String())
	}
	return nil
}

func contains(name, got, want string) error {
	if !strings.Contains(got, want) {
		return fmt.Errorf("%s does not contain %q:\n%s", name, want, got)
	}
	return nil
}

func (s *scanContext) theOutputShouldContain(want string) error {
	return contains("output", s.stdout.String(), want)
}

func (s *scanContext) theOutputShouldNotContain(unwanted string) error {
	if strings.Contains(s.stdout.String(), unwanted) {
		return fmt.Errorf("output contains %q:\n%s", unwanted, s.stdout.String())
	}
	return nil
}

func (s *scanContext) theErrorOutputShouldContain(want string) error {
	return contains("error output", s.stderr.String(), want)
}

func (s *scanContext) theFileShouldContain(name, want string) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return err
	}
	return contains(name, string(data), want)
}

// InitializeScenario registers the step definitions.
func InitializeScenario(sc *godog.ScenarioContext) {
	s := &scanContext{}

	sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		return ctx, s.reset()
	})
	sc.After(func(ctx context.Context, _ *godog.Scenario, _ error) (context.Context, error) {
		if err := s.cleanup(); err != nil {
			fmt.Printf("Warning: failed to clean up scenario: %v\n", err)
		}
		return ctx, nil
	})

	sc.Step(`^a PNG image "([^"]*)" with a QR code "([^"]*)"$`, s.aQRCode)
	sc.Step(`^a PNG image "([^"]*)" with a Code 128 "([^"]*)"$`, s.aCode128)
	sc.Step(`^a PNG image "([^"]*)" with a Code 128 "([^"]*)" and a QR code "([^"]*)"$`, s.aCode128AndQRCode)
	sc.Step(`^a blank PNG image "([^"]*)"$`, s.aBlankImage)
	sc.Step(`^a file "([^"]*)" containing "([^"]*)"$`, s.aFile)
	sc.Step(`^the environment variable "([^"]*)" is "([^"]*)"$`, s.theEnvironmentVariable)
	sc.Step(`^I run zxinglight with "([^"]*)"$`, s.iRun)
	sc.Step(`^the command should succeed$`, s.theCommandShouldSucceed)
	sc.Step(`^the command should fail$`, s.theCommandShouldFail)
	sc.Step(`^the output should contain "([^"]*)"$`, s.theOutputShouldContain)
	sc.Step(`^the output should not contain "([^"]*)"$`, s.theOutputShouldNotContain)
	sc.Step(`^the error output should contain "([^"]*)"$`, s.theErrorOutputShouldContain)
	sc.Step(`^the file "([^"]*)" should contain "([^"]*)"$`, s.theFileShouldContain)
}

// TestFeatures runs every feature file under features/.
func TestFeatures(t *testing.T) {
	format := os.Getenv("GODOG_FORMAT")
	if format == "" {
		format = "progress"
	}
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   format,
			Tags:     os.Getenv("GODOG_TAGS"),
			Paths:    []string{"features"},
			TestingT: t,
			Strict:   true,
		},
	}
	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
