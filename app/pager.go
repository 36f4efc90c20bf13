package app

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/kballard/go-shellquote"
	"github.com/pterm/pterm"
)

const defaultPager = "less"

// pagerCommand resolves the pager to use: $PAGER (split shell-style so
// arguments like "less -R" work) or the default pager. An empty result
// means no usable pager was found.
func pagerCommand() []string {
	if pagerEnv := os.Getenv("PAGER"); pagerEnv != "" {
		parts, err := shellquote.Split(pagerEnv)
		if err == nil && len(parts) > 0 {
			return parts
		}
	}

	if _, err := exec.LookPath(defaultPager); err == nil {
		return []string{defaultPager}
	}

	return nil
}

// showInPager displays content through the system pager, falling back
// to stdout when no pager is available.
func showInPager(content string) error {
	parts := pagerCommand()
	if parts == nil {
		pterm.Println(content)
		return nil
	}

	f, err := os.CreateTemp("", "worklog-*.txt")
	if err != nil {
		return fmt.Errorf("creating temporary file: %w", err)
	}

	defer os.Remove(f.Name())

	_, err = f.WriteString(content)
	if cerr := f.Close(); err == nil {
		err = cerr
	}

	if err != nil {
		return fmt.Errorf("writing temporary file: %w", err)
	}

	cmd := exec.Command(parts[0], append(parts[1:], f.Name())...)

	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd.Run()
}
