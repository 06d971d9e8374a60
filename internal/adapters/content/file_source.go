package content

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ContentPrefix marca os caminhos resolvidos contra a raiz de conteúdo.
// Os demais caminhos são resolvidos contra assets_base da campanha.
const ContentPrefix = "content/"

var ErrCaminhoInvalido = errors.New("caminho de conteúdo inválido")

// FileSource busca fragmentos de texto no sistema de arquivos, aplicando a
// regra de resolução de caminhos do documento de campanha.
type FileSource struct {
	contentRoot string
	assetsRoot  string
	assetsBase  func() string
}

// NewFileSource cria a fonte de conteúdo com as raízes configuradas.
// assetsBase é consultada a cada busca: um reload da campanha que troque
// meta.assets_base vale imediatamente.
func NewFileSource(contentRoot, assetsRoot string, assetsBase func() string) *FileSource {
	return &FileSource{
		contentRoot: contentRoot,
		assetsRoot:  assetsRoot,
		assetsBase:  assetsBase,
	}
}

// Fetch lê o texto bruto do caminho relativo informado.
func (f *FileSource) Fetch(_ context.Context, path string) (string, error) {
	full, err := f.resolve(path)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return "", fmt.Errorf("leitura de %s: %w", path, err)
	}
	return string(data), nil
}

// resolve aplica a regra de resolução e bloqueia escapes da raiz.
func (f *FileSource) resolve(path string) (string, error) {
	if path == "" || filepath.IsAbs(path) {
		return "", ErrCaminhoInvalido
	}
	clean := filepath.Clean(filepath.FromSlash(path))
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", ErrCaminhoInvalido
	}
	if strings.HasPrefix(path, ContentPrefix) {
		return filepath.Join(f.contentRoot, clean), nil
	}
	return filepath.Join(f.assetsRoot, f.assetsBase(), clean), nil
}
