package project

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// detectFramework inspects the root-level manifests for well-known
// frameworks. First confident match wins; an empty string means none found.
func detectFramework(rootDir string) string {
	if fw := nodeFramework(filepath.Join(rootDir, "package.json")); fw != "" {
		return fw
	}
	if fw := pythonFramework(filepath.Join(rootDir, "requirements.txt")); fw != "" {
		return fw
	}
	if source, err := os.ReadFile(filepath.Join(rootDir, "pom.xml")); err == nil {
		if strings.Contains(string(source), "spring-boot") {
			return "Spring Boot"
		}
	}
	return ""
}

func nodeFramework(path string) string {
	source, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	var manifest struct {
		Dependencies    map[string]string `json:"dependencies"`
		DevDependencies map[string]string `json:"devDependencies"`
	}
	if err := json.Unmarshal(source, &manifest); err != nil {
		return ""
	}
	deps := make(map[string]bool, len(manifest.Dependencies)+len(manifest.DevDependencies))
	for name := range manifest.Dependencies {
		deps[name] = true
	}
	for name := range manifest.DevDependencies {
		deps[name] = true
	}

	switch {
	case deps["react"] && deps["next"]:
		return "Next.js"
	case deps["react"]:
		return "React"
	case deps["vue"] && deps["nuxt"]:
		return "Nuxt.js"
	case deps["vue"]:
		return "Vue.js"
	case deps["angular"] || deps["@angular/core"]:
		return "Angular"
	case deps["express"]:
		return "Express.js"
	case deps["svelte"]:
		return "Svelte"
	}
	return ""
}

func pythonFramework(path string) string {
	source, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	content := strings.ToLower(string(source))
	switch {
	case strings.Contains(content, "django"):
		return "Django"
	case strings.Contains(content, "flask"):
		return "Flask"
	case strings.Contains(content, "fastapi"):
		return "FastAPI"
	}
	return ""
}
