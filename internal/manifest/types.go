// Package manifest defines the aggregated output document and its
// normalization rules.
package manifest

// ProjectMetadata describes one successfully evaluated project. Created once,
// never mutated afterwards.
type ProjectMetadata struct {
	Name                   string   `json:"name"`
	Path                   string   `json:"path"`
	TargetPath             string   `json:"targetPath"`
	OutputType             string   `json:"outputType"`
	NormalizedOutputType   string   `json:"normalizedOutputType"`
	DesignerHostPath       string   `json:"designerHostPath"`
	TargetFramework        string   `json:"targetFramework"`
	DepsFilePath           string   `json:"depsFilePath"`
	RuntimeConfigFilePath  string   `json:"runtimeConfigFilePath"`
	ProjectReferences      []string `json:"projectReferences"`
	IntermediateOutputPath string   `json:"intermediateOutputPath"`

	// DesignerFiles ride on the record until aggregation merges them into the
	// manifest's top-level files array.
	DesignerFiles []DesignerFile `json:"-"`
}

// DesignerFile is a source file flagged as relevant to the visual designer,
// attributed back to its owning project and that project's final output
// artifact.
type DesignerFile struct {
	Path        string `json:"path"`
	TargetPath  string `json:"targetPath"`
	ProjectPath string `json:"projectPath"`
}

// Manifest is the sole externally visible output of a run.
type Manifest struct {
	Solution string            `json:"solution"`
	Projects []ProjectMetadata `json:"projects"`
	Files    []DesignerFile    `json:"files"`
}
