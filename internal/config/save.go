package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SaveMentors replaces the mentors list in the config file at configPath.
// Other sections, including their comments, are preserved.
func SaveMentors(configPath string, mentors []string) error {
	if err := ValidateMentors(mentors); err != nil {
		return err
	}

	list := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, m := range mentors {
		list.Content = append(list.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: m})
	}
	return setTopLevel(configPath, "mentors", list)
}

// setTopLevel sets key in the root mapping of the YAML document at path,
// creating the file if needed.
func setTopLevel(path, key string, value *yaml.Node) error {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is the user's config file
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config: %w", err)
	}

	var doc yaml.Node
	if len(bytes.TrimSpace(data)) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
	}

	// A file holding only comments parses to an empty document. The comments
	// are written back verbatim ahead of the new mapping.
	var preamble []byte
	if isEmptyDocument(&doc) {
		preamble = commentLines(data)
		doc = yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{{Kind: yaml.MappingNode}}}
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return fmt.Errorf("parsing config: top level is not a mapping")
	}

	found := false
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value == key {
			root.Content[i+1] = value
			found = true
			break
		}
	}
	if !found {
		root.Content = append(root.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: key}, value)
	}

	var buf bytes.Buffer
	if len(preamble) > 0 {
		buf.Write(preamble)
		buf.WriteString("\n\n")
	}
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_ = enc.Close()

	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

func isEmptyDocument(doc *yaml.Node) bool {
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return true
	}
	root := doc.Content[0]
	return len(doc.Content) == 1 && root.Kind == yaml.ScalarNode && root.Tag == "!!null"
}

// commentLines returns the comment lines of data, trimmed of surrounding blank lines.
func commentLines(data []byte) []byte {
	var out [][]byte
	for _, line := range bytes.Split(data, []byte("\n")) {
		if trimmed := bytes.TrimSpace(line); len(trimmed) == 0 || trimmed[0] == '#' {
			out = append(out, bytes.TrimRight(line, " \t\r"))
		}
	}
	return bytes.TrimSpace(bytes.Join(out, []byte("\n")))
}
