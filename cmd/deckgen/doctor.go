package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"slices"
	"strings"

	"github.com/go-rod/rod/lib/launcher"

	deckgen "github.com/alnah/go-deckgen"
	"github.com/alnah/go-deckgen/internal/fileutil"
	"github.com/alnah/go-deckgen/internal/hints"
)

// checkLevel grades a single doctor check.
type checkLevel string

const (
	levelOK    checkLevel = "ok"
	levelWarn  checkLevel = "warn"
	levelError checkLevel = "error"
)

// doctorCheck is one line of the report.
type doctorCheck struct {
	Name   string     `json:"name"`
	Level  checkLevel `json:"level"`
	Detail string     `json:"detail"`
}

// doctorReport says which output formats this machine can build and why.
type doctorReport struct {
	Status   string          `json:"status"` // "ready", "warnings", "errors"
	Platform string          `json:"platform"`
	Formats  map[string]bool `json:"formats"`
	Checks   []doctorCheck   `json:"checks"`
}

// doctorInputs is everything the checks read from the machine.
type doctorInputs struct {
	templatesFile string
	assetPath     string
	browserBin    string
	noSandbox     bool
	container     bool
	ci            bool
	lookPath      func() (string, bool)
	browserInfo   func(path string) (string, error)
	tempWritable  func() error
}

func defaultDoctorInputs() *doctorInputs {
	ec := loadEnvConfig()
	return &doctorInputs{
		templatesFile: ec.TemplatesFile,
		assetPath:     ec.AssetPath,
		browserBin:    os.Getenv("ROD_BROWSER_BIN"),
		noSandbox:     os.Getenv("ROD_NO_SANDBOX") == "1",
		container:     hints.IsInContainer(),
		ci:            hints.InCI(),
		lookPath:      launcher.LookPath,
		browserInfo:   browserVersion,
		tempWritable: func() error {
			_, cleanup, err := fileutil.WriteTempFile("doctor", "html")
			if err == nil {
				cleanup()
			}
			return err
		},
	}
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = at least one format can be built, 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	report := runDoctor(defaultDoctorInputs())

	if slices.Contains(args, "--json") {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(report)
	} else {
		printDoctorReport(env.Stdout, report)
	}

	if report.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor checks each build prerequisite. deck needs templates; print also
// needs its assets; print-pdf also needs a browser and a temp directory.
func runDoctor(in *doctorInputs) *doctorReport {
	templates := checkTemplates(in.templatesFile)
	printAssets := checkPrintAssets(in.assetPath)
	temp := checkTempDir(in.tempWritable)
	browser := checkBrowser(in)

	r := &doctorReport{
		Platform: runtime.GOOS + "/" + runtime.GOARCH,
		Checks:   []doctorCheck{templates, printAssets, temp, browser},
	}
	if browser.Level == levelOK && (in.container || in.ci) && !in.noSandbox {
		r.Checks = append(r.Checks, doctorCheck{
			Name:   "sandbox",
			Level:  levelWarn,
			Detail: "container or CI detected; set ROD_NO_SANDBOX=1 for print-pdf",
		})
	}

	deck := templates.Level != levelError
	printOK := deck && printAssets.Level != levelError
	r.Formats = map[string]bool{
		string(deckgen.FormatDeck):     deck,
		string(deckgen.FormatPrint):    printOK,
		string(deckgen.FormatPrintPDF): printOK && browser.Level == levelOK && temp.Level == levelOK,
	}

	r.Status = "ready"
	for _, c := range r.Checks {
		switch c.Level {
		case levelError:
			r.Status = "errors"
		case levelWarn:
			if r.Status == "ready" {
				r.Status = "warnings"
			}
		}
	}
	return r
}

func checkTemplates(file string) doctorCheck {
	c := doctorCheck{Name: "templates"}
	var extra []deckgen.Template
	if file != "" {
		loaded, err := deckgen.LoadTemplates(file)
		if err != nil {
			c.Level, c.Detail = levelError, err.Error()
			return c
		}
		extra = loaded
	}
	ids, err := availableTemplateIDs(extra)
	if err != nil {
		c.Level, c.Detail = levelError, err.Error()
		return c
	}
	c.Level = levelOK
	c.Detail = fmt.Sprintf("%d available: %s", len(ids), strings.Join(ids, ", "))
	return c
}

func checkPrintAssets(path string) doctorCheck {
	c := doctorCheck{Name: "print assets", Level: levelOK, Detail: "embedded"}
	if path == "" {
		return c
	}
	b, err := deckgen.NewBuilder(deckgen.WithAssetPath(path))
	if err != nil {
		c.Level, c.Detail = levelError, err.Error()
		return c
	}
	_ = b.Close()
	c.Detail = path + " (embedded fallback)"
	return c
}

func checkTempDir(writable func() error) doctorCheck {
	c := doctorCheck{Name: "temp directory", Level: levelOK, Detail: os.TempDir()}
	if err := writable(); err != nil {
		c.Level = levelError
		c.Detail = fmt.Sprintf("%s not writable: %v", os.TempDir(), err)
	}
	return c
}

// checkBrowser looks for Chrome. Only print-pdf needs it, so a missing
// browser is a warning.
func checkBrowser(in *doctorInputs) doctorCheck {
	c := doctorCheck{Name: "browser", Level: levelWarn}

	path := in.browserBin
	if path == "" {
		found := false
		if path, found = in.lookPath(); !found {
			c.Detail = "Chrome/Chromium not found; print-pdf unavailable (install Chrome or set ROD_BROWSER_BIN)"
			return c
		}
	}
	if _, err := os.Stat(path); err != nil {
		c.Detail = fmt.Sprintf("%s: %v; print-pdf unavailable", path, err)
		return c
	}

	c.Level, c.Detail = levelOK, path
	if v, err := in.browserInfo(path); err == nil && v != "" {
		c.Detail += " (" + v + ")"
	}
	if in.noSandbox {
		c.Detail += ", sandbox disabled"
	}
	return c
}

func browserVersion(path string) (string, error) {
	out, err := exec.Command(path, "--version").Output() // #nosec G204 -- browser path from env or rod lookup
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// printDoctorReport outputs the report for humans.
func printDoctorReport(w io.Writer, r *doctorReport) {
	fmt.Fprintf(w, "deckgen doctor (%s)\n\n", r.Platform)

	for _, c := range r.Checks {
		fmt.Fprintf(w, "  %-7s %-15s %s\n", "["+strings.ToUpper(string(c.Level))+"]", c.Name, c.Detail)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Formats")
	for _, f := range []deckgen.Format{deckgen.FormatDeck, deckgen.FormatPrint, deckgen.FormatPrintPDF} {
		state := "unavailable"
		if r.Formats[string(f)] {
			state = "available"
		}
		fmt.Fprintf(w, "  %-10s %s\n", f, state)
	}
	fmt.Fprintln(w)

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready to build")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
