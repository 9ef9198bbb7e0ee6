package services

import "testing"

func TestParseImportResponse(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    int
		wantErr bool
	}{
		{
			name: "plain array",
			text: `[{"boss":"Unit 1","minion":"Counting","impact":1,"subject":"Math"}]`,
			want: 1,
		},
		{
			name: "fenced json",
			text: "```json\n[{\"boss\":\"Unit 1\",\"minion\":\"Counting\"},{\"boss\":\"Unit 2\",\"minion\":\"Shapes\"}]\n```",
			want: 2,
		},
		{
			name: "bare fence",
			text: "```\n[]\n```",
			want: 0,
		},
		{
			name:    "prose instead of json",
			text:    "I could not find any objectives in this image.",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseImportResponse(tt.text)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseImportResponse: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("parsed %d objectives, want %d", len(got), tt.want)
			}
		})
	}
}
