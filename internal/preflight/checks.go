package preflight

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"golang.org/x/sys/unix"

	"promto/internal/config"
)

// CheckBinary verifies that the named command resolves on PATH or at an
// absolute location.
func CheckBinary(name, command string) Result {
	command = strings.TrimSpace(command)
	if command == "" {
		return Result{Name: name, Detail: "no command configured"}
	}
	resolved, err := exec.LookPath(command)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s not found (%v)", command, err)}
	}
	return Result{Name: name, Passed: true, Detail: resolved}
}

// CheckAffiliateCredentials reports which affiliate credentials are set
// without echoing any value.
func CheckAffiliateCredentials(status config.CredentialStatus) Result {
	const name = "Affiliate credentials"
	var missing []string
	if !status.AppKey {
		missing = append(missing, "app key")
	}
	if !status.AppSecret {
		missing = append(missing, "app secret")
	}
	if len(missing) > 0 {
		return Result{Name: name, Detail: "missing " + strings.Join(missing, ", ")}
	}
	detail := "app key and secret set"
	if !status.AccessToken {
		detail += " (no access token)"
	}
	return Result{Name: name, Passed: true, Detail: detail}
}

// CheckOpenAIKey reports whether the generative API key is configured.
func CheckOpenAIKey(apiKey string) Result {
	const name = "OpenAI key"
	if strings.TrimSpace(apiKey) == "" {
		return Result{Name: name, Detail: "missing OPENAI_API_KEY"}
	}
	return Result{Name: name, Passed: true, Detail: "key set"}
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}
