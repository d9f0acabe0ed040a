package storage

import "testing"

func TestObjectPath(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     string
	}{
		{
			name:     "plain filename",
			filename: "photo.png",
			want:     "user1/note1/photo.png",
		},
		{
			name:     "path traversal stripped",
			filename: "../../etc/passwd",
			want:     "user1/note1/passwd",
		},
		{
			name:     "windows separators",
			filename: `C:\Users\me\photo.png`,
			want:     "user1/note1/photo.png",
		},
		{
			name:     "empty filename",
			filename: "",
			want:     "user1/note1/image",
		},
		{
			name:     "bare slash",
			filename: "/",
			want:     "user1/note1/image",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ObjectPath("user1", "note1", tt.filename); got != tt.want {
				t.Errorf("ObjectPath() = %q, want %q", got, tt.want)
			}
		})
	}
}
