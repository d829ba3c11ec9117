package types

import "testing"

func TestSearchRequestFilterExpression(t *testing.T) {
	tests := []struct {
		name     string
		request  SearchRequest
		expected string
	}{
		{
			name:     "No filters",
			request:  SearchRequest{AllChats: true},
			expected: "",
		},
		{
			name: "One chat",
			request: SearchRequest{
				ChatID: 123456789,
			},
			expected: "chat_id = 123456789",
		},
		{
			name: "Multiple chats",
			request: SearchRequest{
				ChatIDs: []int64{123, 456, 789},
			},
			expected: "chat_id IN [123,456,789]",
		},
		{
			name: "Type filters only",
			request: SearchRequest{
				AllChats:    true,
				TypeFilters: []FileType{FileTypeDocument, FileTypeVideo},
			},
			expected: "type IN [0,1]",
		},
		{
			name: "Chat and type",
			request: SearchRequest{
				ChatID:      42,
				TypeFilters: []FileType{FileTypeAudio},
			},
			expected: "chat_id = 42 AND type IN [2]",
		},
		{
			name: "AllChats ignores chat filters",
			request: SearchRequest{
				AllChats: true,
				ChatID:   42,
				ChatIDs:  []int64{1, 2},
			},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.request.FilterExpression()
			if got != tt.expected {
				t.Errorf("FilterExpression() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestParseInlineQuery(t *testing.T) {
	tests := []struct {
		raw       string
		query     string
		wantTypes []FileType
	}{
		{"matrix", "matrix", nil},
		{"matrix | video", "matrix", []FileType{FileTypeVideo}},
		{"matrix|video", "matrix", []FileType{FileTypeVideo}},
		{"  lo-fi beats | music ", "lo-fi beats", []FileType{FileTypeAudio}},
		{"a | b | gif", "a | b", []FileType{FileTypeAnimation}},
		// unknown token stays part of the keywords
		{"pipe | dream", "pipe | dream", nil},
		{"| doc", "", []FileType{FileTypeDocument}},
		{"", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			q, types := ParseInlineQuery(tt.raw)
			if q != tt.query {
				t.Errorf("query = %q, want %q", q, tt.query)
			}
			if len(types) != len(tt.wantTypes) {
				t.Fatalf("types = %v, want %v", types, tt.wantTypes)
			}
			for i := range types {
				if types[i] != tt.wantTypes[i] {
					t.Errorf("types[%d] = %v, want %v", i, types[i], tt.wantTypes[i])
				}
			}
		})
	}
}

func TestFileDocumentDisplayName(t *testing.T) {
	d := &FileDocument{FileName: "report.pdf", Caption: "q3"}
	if d.DisplayName() != "report.pdf" {
		t.Errorf("DisplayName() = %q", d.DisplayName())
	}
	d.FileName = ""
	if d.DisplayName() != "q3" {
		t.Errorf("DisplayName() = %q", d.DisplayName())
	}
	d.Caption = ""
	d.Type = int(FileTypeVideo)
	d.MessageID = 7
	if d.DisplayName() != "Video 7" {
		t.Errorf("DisplayName() = %q", d.DisplayName())
	}
}
