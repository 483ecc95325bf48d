package cache

import "testing"

func TestGenerateCacheKey(t *testing.T) {
	tests := []struct {
		name        string
		serviceName string
		objectType  string
		identifier  string
		paramsKey   []string
		expectedKey string
	}{
		{
			name:        "without paramsKey",
			serviceName: "generation",
			objectType:  "response",
			identifier:  "9f2c",
			paramsKey:   nil,
			expectedKey: "quizforge:generation:response:9f2c",
		},
		{
			name:        "with empty paramsKey",
			serviceName: "generation",
			objectType:  "response",
			identifier:  "9f2c",
			paramsKey:   []string{},
			expectedKey: "quizforge:generation:response:9f2c",
		},
		{
			name:        "with one paramsKey",
			serviceName: "job",
			objectType:  "status",
			identifier:  "01ABC",
			paramsKey:   []string{"progress"},
			expectedKey: "quizforge:job:status:01ABC:progress",
		},
		{
			name:        "with multiple paramsKey",
			serviceName: "batch",
			objectType:  "items",
			identifier:  "01XYZ",
			paramsKey:   []string{"fr", "college", "medium"},
			expectedKey: "quizforge:batch:items:01XYZ:fr_college_medium",
		},
		{
			name:        "with paramsKey containing special characters",
			serviceName: "service",
			objectType:  "type",
			identifier:  "id",
			paramsKey:   []string{"param-1", "param_2"},
			expectedKey: "quizforge:service:type:id:param-1_param_2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actualKey := GenerateCacheKey(tt.serviceName, tt.objectType, tt.identifier, tt.paramsKey...)
			if actualKey != tt.expectedKey {
				t.Errorf("GenerateCacheKey() = %v, want %v", actualKey, tt.expectedKey)
			}
		})
	}
}
