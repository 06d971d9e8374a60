package content

import "strings"

// StripFrontmatter remove o bloco YAML inicial delimitado por linhas "---",
// quando presente. Frontmatter aberto sem fechamento é devolvido intacto.
func StripFrontmatter(text string) string {
	lines := strings.Split(text, "\n")
	if len(lines) == 0 || strings.TrimRight(lines[0], "\r") != "---" {
		return text
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], "\r") == "---" {
			return strings.TrimLeft(strings.Join(lines[i+1:], "\n"), "\n")
		}
	}
	return text
}

// ExtractTitle extrai o título quando a primeira linha do corpo é um heading
// markdown de nível 1, retornando o corpo sem o heading. Sem heading,
// retorna título vazio e o corpo original.
func ExtractTitle(body string) (title, rest string) {
	trimmed := strings.TrimLeft(body, "\n")
	line, remainder, found := strings.Cut(trimmed, "\n")
	line = strings.TrimSpace(strings.TrimRight(line, "\r"))
	if !strings.HasPrefix(line, "# ") {
		return "", body
	}
	title = strings.TrimSpace(strings.TrimPrefix(line, "# "))
	if found {
		rest = strings.TrimLeft(remainder, "\n")
	}
	return title, rest
}
