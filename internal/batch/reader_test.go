package batch

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestReadBatchFile(t *testing.T) {
	tests := []struct {
		name        string
		fileContent string
		want        []Entry
	}{
		{
			name:        "empty file",
			fileContent: "",
			want:        nil,
		},
		{
			name:        "only whitespace",
			fileContent: "   \n\t\r\n   ",
			want:        nil,
		},
		{
			name: "plain terms",
			fileContent: `gato
perro
Where is the subway?`,
			want: []Entry{
				{Term: "gato", Line: 1},
				{Term: "perro", Line: 2},
				{Term: "Where is the subway?", Line: 3},
			},
		},
		{
			name: "comments and blank lines",
			fileContent: `# animals
gato

  # indented comment
  perro  
`,
			want: []Entry{
				{Term: "gato", Line: 2},
				{Term: "perro", Line: 5},
			},
		},
		{
			name:        "windows line endings",
			fileContent: "ябълка\r\nкотка\r\nкуче",
			want: []Entry{
				{Term: "ябълка", Line: 1},
				{Term: "котка", Line: 2},
				{Term: "куче", Line: 3},
			},
		},
		{
			name:        "byte order mark",
			fileContent: "\ufeff地下鉄\n",
			want: []Entry{
				{Term: "地下鉄", Line: 1},
			},
		},
		{
			name:        "hash inside term is kept",
			fileContent: "C# language",
			want: []Entry{
				{Term: "C# language", Line: 1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpFile := filepath.Join(t.TempDir(), "terms.txt")
			if err := os.WriteFile(tmpFile, []byte(tt.fileContent), 0644); err != nil {
				t.Fatalf("Failed to create test file: %v", err)
			}

			got, err := ReadBatchFile(tmpFile)
			if err != nil {
				t.Fatalf("ReadBatchFile() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ReadBatchFile() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReadBatchFile_FileNotFound(t *testing.T) {
	_, err := ReadBatchFile("/nonexistent/file.txt")
	if err == nil {
		t.Error("Expected error for non-existent file")
	}
}
