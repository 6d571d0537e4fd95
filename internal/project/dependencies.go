package project

import (
	"bufio"
	"bytes"
	"encoding/json"
	"regexp"
	"strings"
)

// dependencyParsers maps manifest file names to their parser. Each parser
// is best-effort: a malformed manifest contributes nothing rather than
// failing the detection.
var dependencyParsers = map[string]func([]byte) []string{
	"requirements.txt": parseRequirementsTxt,
	"package.json":     parsePackageJSON,
	"go.mod":           parseGoMod,
	"Cargo.toml":       parseCargoToml,
	"pom.xml":          parsePomXML,
	"Gemfile":          parseGemfile,
	"build.gradle":     parseGradle,
}

func parseRequirementsTxt(source []byte) []string {
	var deps []string
	sc := bufio.NewScanner(bytes.NewReader(source))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		// Strip version specifiers: "flask>=2.0" -> "flask".
		if i := strings.IndexAny(line, "=<>![ ;"); i >= 0 {
			line = line[:i]
		}
		if line != "" {
			deps = append(deps, line)
		}
	}
	return deps
}

func parsePackageJSON(source []byte) []string {
	var manifest struct {
		Dependencies    map[string]string `json:"dependencies"`
		DevDependencies map[string]string `json:"devDependencies"`
	}
	if err := json.Unmarshal(source, &manifest); err != nil {
		return nil
	}
	var deps []string
	for name := range manifest.Dependencies {
		deps = append(deps, name)
	}
	for name := range manifest.DevDependencies {
		deps = append(deps, name)
	}
	return deps
}

var goModRequire = regexp.MustCompile(`^\s*([^\s/]+\.[^\s/]+/[^\s]+)\s+v`)

func parseGoMod(source []byte) []string {
	var deps []string
	sc := bufio.NewScanner(bytes.NewReader(source))
	for sc.Scan() {
		if m := goModRequire.FindStringSubmatch(sc.Text()); m != nil {
			deps = append(deps, m[1])
		}
	}
	return deps
}

var cargoDep = regexp.MustCompile(`^([\w-]+)\s*=`)

func parseCargoToml(source []byte) []string {
	var deps []string
	inDependencies := false
	sc := bufio.NewScanner(bytes.NewReader(source))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if strings.HasPrefix(line, "[") {
			inDependencies = strings.HasPrefix(line, "[dependencies")
			continue
		}
		if !inDependencies {
			continue
		}
		if m := cargoDep.FindStringSubmatch(line); m != nil {
			deps = append(deps, m[1])
		}
	}
	return deps
}

var pomArtifact = regexp.MustCompile(`<artifactId>(.*?)</artifactId>`)

func parsePomXML(source []byte) []string {
	var deps []string
	for _, m := range pomArtifact.FindAllStringSubmatch(string(source), -1) {
		deps = append(deps, m[1])
	}
	return deps
}

var gemfileDep = regexp.MustCompile(`gem\s+['"]([^'"]+)`)

func parseGemfile(source []byte) []string {
	var deps []string
	for _, m := range gemfileDep.FindAllStringSubmatch(string(source), -1) {
		deps = append(deps, m[1])
	}
	return deps
}

var gradleDep = regexp.MustCompile(`(?:implementation|compile)\s+['"]([^:'"]+)`)

func parseGradle(source []byte) []string {
	var deps []string
	for _, m := range gradleDep.FindAllStringSubmatch(string(source), -1) {
		deps = append(deps, m[1])
	}
	return deps
}
