package msbuild

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeProject(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func defaultEvaluator() *Evaluator {
	return NewEvaluator(LoadOptions{IgnoreMissingImports: true, FailOnUnresolvedSDK: true})
}

func TestEvaluate_PropertiesAndDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeProject(t, filepath.Join(dir, "App.csproj"), `<Project Sdk="Microsoft.NET.Sdk">
  <PropertyGroup>
    <TargetFramework>net8.0</TargetFramework>
    <OutputType>Exe</OutputType>
  </PropertyGroup>
</Project>`)

	p, err := defaultEvaluator().Evaluate(path)
	require.NoError(t, err)

	require.Equal(t, "net8.0", p.Property("TargetFramework"))
	require.Equal(t, "Exe", p.Property("OutputType"))
	require.Equal(t, "App", p.Property("AssemblyName"))
	require.Equal(t, filepath.Join(dir, "bin", "Debug", "net8.0", "App.dll"), p.Property("TargetPath"))
	require.Equal(t, filepath.Join(dir, "bin", "Debug", "net8.0", "App.deps.json"), p.Property("ProjectDepsFilePath"))
	require.Equal(t, filepath.Join("obj", "Debug", "net8.0")+string(filepath.Separator), p.Property("IntermediateOutputPath"))
	require.Empty(t, p.Property("NoSuchProperty"))
}

func TestEvaluate_LastDefinitionWins(t *testing.T) {
	path := writeProject(t, filepath.Join(t.TempDir(), "A.csproj"), `<Project>
  <PropertyGroup>
    <AssemblyName>First</AssemblyName>
  </PropertyGroup>
  <PropertyGroup>
    <AssemblyName>Second</AssemblyName>
  </PropertyGroup>
</Project>`)

	p, err := defaultEvaluator().Evaluate(path)
	require.NoError(t, err)
	require.Equal(t, "Second", p.Property("AssemblyName"))
}

func TestEvaluate_PropertyExpansion(t *testing.T) {
	path := writeProject(t, filepath.Join(t.TempDir(), "A.csproj"), `<Project>
  <PropertyGroup>
    <RootNamespace>$(MSBuildProjectName).Core</RootNamespace>
    <AssemblyName>$(RootNamespace)</AssemblyName>
  </PropertyGroup>
</Project>`)

	p, err := defaultEvaluator().Evaluate(path)
	require.NoError(t, err)
	require.Equal(t, "A.Core", p.Property("AssemblyName"))
}

func TestEvaluate_ConditionedGroupsSkipped(t *testing.T) {
	path := writeProject(t, filepath.Join(t.TempDir(), "A.csproj"), `<Project>
  <PropertyGroup Condition="'$(Configuration)'=='Release'">
    <OutputType>WinExe</OutputType>
  </PropertyGroup>
</Project>`)

	p, err := defaultEvaluator().Evaluate(path)
	require.NoError(t, err)
	// The conditioned value is ignored; the default applies.
	require.Equal(t, "Library", p.Property("OutputType"))
}

func TestEvaluate_ItemPaths(t *testing.T) {
	dir := t.TempDir()
	writeProject(t, filepath.Join(dir, "B", "B.csproj"), "<Project/>")
	path := writeProject(t, filepath.Join(dir, "A", "A.csproj"), `<Project>
  <ItemGroup>
    <ProjectReference Include="..\B\B.csproj" />
    <DesignerFile Include="Views/Main.xaml;Views/Alt.xaml" />
  </ItemGroup>
</Project>`)

	p, err := defaultEvaluator().Evaluate(path)
	require.NoError(t, err)

	require.Equal(t, []string{filepath.Join(dir, "B", "B.csproj")}, p.ItemPaths("ProjectReference"))
	require.Equal(t, []string{
		filepath.Join(dir, "A", "Views", "Main.xaml"),
		filepath.Join(dir, "A", "Views", "Alt.xaml"),
	}, p.ItemPaths("DesignerFile"))
}

func TestEvaluate_GlobItems(t *testing.T) {
	dir := t.TempDir()
	writeProject(t, filepath.Join(dir, "Views", "Main.xaml"), "<Window/>")
	writeProject(t, filepath.Join(dir, "Views", "Sub", "Alt.xaml"), "<Window/>")
	path := writeProject(t, filepath.Join(dir, "A.csproj"), `<Project>
  <ItemGroup>
    <DesignerFile Include="Views/**/*.xaml" />
  </ItemGroup>
</Project>`)

	p, err := defaultEvaluator().Evaluate(path)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{
		filepath.Join(dir, "Views", "Main.xaml"),
		filepath.Join(dir, "Views", "Sub", "Alt.xaml"),
	}, p.ItemPaths("DesignerFile"))
}

func TestEvaluate_MalformedXML(t *testing.T) {
	path := writeProject(t, filepath.Join(t.TempDir(), "A.csproj"), "<Project><PropertyGroup>")

	_, err := defaultEvaluator().Evaluate(path)
	require.Error(t, err)
}

func TestEvaluate_UnresolvedSDK(t *testing.T) {
	path := writeProject(t, filepath.Join(t.TempDir(), "A.csproj"), `<Project Sdk="$(CustomSdk)"/>`)

	_, err := defaultEvaluator().Evaluate(path)
	require.Error(t, err)
}

func TestEvaluate_MissingImport(t *testing.T) {
	path := writeProject(t, filepath.Join(t.TempDir(), "A.csproj"), `<Project>
  <Import Project="missing.targets" />
</Project>`)

	_, err := NewEvaluator(LoadOptions{IgnoreMissingImports: false}).Evaluate(path)
	require.Error(t, err)

	_, err = defaultEvaluator().Evaluate(path)
	require.NoError(t, err)
}

func TestEvaluate_MultiTargetListPreserved(t *testing.T) {
	path := writeProject(t, filepath.Join(t.TempDir(), "A.csproj"), `<Project>
  <PropertyGroup>
    <TargetFrameworks>net472;net8.0</TargetFrameworks>
  </PropertyGroup>
</Project>`)

	p, err := defaultEvaluator().Evaluate(path)
	require.NoError(t, err)
	require.Equal(t, "net472;net8.0", p.Property("TargetFrameworks"))
	require.Empty(t, p.Property("TargetFramework"))
}
