package service

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/kibanatools/kbackup/types"
	"github.com/kibanatools/kbackup/utils"
)

// ReadDocumentFromFile parses a single exported document.
func (s *ConfigStore) ReadDocumentFromFile(path string) (types.Document, error) {
	s.logger.Info("reading document from file", zap.String("file", path))
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Document{}, err
	}
	var doc types.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return types.Document{}, &types.MalformedFileError{Path: path, Reason: err.Error()}
	}
	return doc, nil
}

// ReadPackageFromFile parses a package file, an object holding the
// documents under a docs array.
func (s *ConfigStore) ReadPackageFromFile(path string) (types.DocumentPackage, error) {
	s.logger.Info("reading package from file", zap.String("file", path))
	data, err := os.ReadFile(path)
	if err != nil {
		return types.DocumentPackage{}, err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return types.DocumentPackage{}, &types.MalformedFileError{Path: path, Reason: err.Error()}
	}
	docs, ok := raw["docs"]
	if !ok {
		return types.DocumentPackage{}, &types.MalformedFileError{Path: path, Reason: "package has no docs"}
	}
	var pkg types.DocumentPackage
	if err := json.Unmarshal(docs, &pkg.Docs); err != nil {
		return types.DocumentPackage{}, &types.MalformedFileError{Path: path, Reason: err.Error()}
	}
	return pkg, nil
}

// WriteDocumentToFile writes doc as pretty-printed, key-sorted JSON to
// {type}-{id}.json under dir, replacing any previous export of the same
// object. It returns the written path.
func (s *ConfigStore) WriteDocumentToFile(doc types.Document, dir string) (string, error) {
	output, err := jsonDumps(doc)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, fmt.Sprintf("%s-%s.json", doc.Type, doc.ID))
	s.logger.Info("writing document to file", zap.String("file", path))
	if err := utils.WriteFile(path, output); err != nil {
		return "", err
	}
	return path, nil
}

// WriteDocumentsToFile writes every document in set to its own file under
// dir.
func (s *ConfigStore) WriteDocumentsToFile(set types.DocumentSet, dir string) error {
	for _, doc := range set {
		if _, err := s.WriteDocumentToFile(doc, dir); err != nil {
			return err
		}
	}
	return nil
}

// WritePackageToFile bundles set into a single package file named
// {name}-Pkg.json under dir and returns the written path.
func (s *ConfigStore) WritePackageToFile(name string, set types.DocumentSet, dir string) (string, error) {
	pkg := types.DocumentPackage{Docs: make([]types.Document, 0, len(set))}
	for _, doc := range set {
		pkg.Docs = append(pkg.Docs, doc)
	}
	output, err := jsonDumps(pkg)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, fmt.Sprintf("%s-Pkg.json", name))
	s.logger.Info("writing package to file", zap.String("file", path))
	if err := utils.WriteFile(path, output); err != nil {
		return "", err
	}
	return path, nil
}

// jsonDumps renders v the way the export format requires: 4-space indent,
// alphabetical keys, trailing newline.
func jsonDumps(v interface{}) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
