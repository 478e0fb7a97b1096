package structure

func strp(s string) *string { return &s }

func cellp(s string) *string { return &s }
