package videos

// fallbackVideos are curated tutorial ids used when search is unavailable.
var fallbackVideos = map[string][]string{
	"guitar":      {"BBz-Jyr23M4", "F5bkQ0MjANs", "n5nUHTQmGUY", "kOb3qe4Y8Ug", "Ck5aCKH1ZYU", "7SAt5Cr5VeU", "5xZg4rWQ7Bk"},
	"piano":       {"QjPDMpU3pnU", "xgZGnBHHh54", "ZmDGkDtaOI8", "wf2cAK8dxAA", "mGVKpe1m9ns", "hEK0Z6LUOkA", "Tfh2IDFD68Q"},
	"cooking":     {"rtR63-ecUNo", "ZJy1ajvMU1k", "dOIKEL9jl0c", "Y7i1aJa3Ulg", "oyi_1c1PjIs", "bJUiWdM__Qw", "1-SJGQ2HLp8"},
	"baking":      {"kQ4qTzp8VZ8", "n3ksSDQQfqo", "D91HE3qNy4I", "jIg5QRj-1nU", "uZ1Y8AT4RyM", "bBNX_v8UJ2o", "GaFFXEB9yP0"},
	"drawing":     {"ewMksAbgdBI", "6DuHRO6GAuo", "8xQ5x2c4wEo", "pMC0Cx3Uk84", "NTZp6JAqXoQ", "cxJjJIlK9dY", "S0SxlqltDBo"},
	"painting":    {"Ha2r6Q6HEzs", "VoUJ8ZtqJDQ", "jvqYC4Nk9RE", "uC9oHcJJQ6g", "Bk3ElDRTGqk", "WPFBpYgbLnw", "MZ8oG1U3KOg"},
	"photography": {"V7z7BAZdt2M", "LxO-6rlihSg", "cAYYMyDuBYE", "JBM6tmC6jKE", "G-L7eBJ7gbo", "SKPy0zGa6cU", "PCHNIpb0_7s"},
	"yoga":        {"v7AYKMP6rOE", "Eml2xnoLpYE", "sTANio_2E0Q", "4pKly2JojMw", "b1H3xO3x_Js", "oBu-pQG6sTY", "g_tea8ZNk5A"},
	"gardening":   {"B0DrWAUsNSc", "vXTsJrKLMuo", "AQTBHK6Tcxk", "m6KrR5Q3pBc", "qjRp3SNqFwY", "pR6pR8mL9z0", "FWT0y6Iz2hg"},
	"knitting":    {"p_R1UDsNOMk", "nBd5d6ZAyHs", "Q8GvYxtfM6s", "u2zO-5iG2dY", "GS_HJ2JlJMA", "2Ql_SlLAWRI", "ImT2m5tCLNA"},
	"coding":      {"zOjov-2OZ0E", "rfscVS0vtbw", "PkZNo7MFNFg", "kqtD5dpn9C8", "8DvywoWv6fI", "W6NZfCO5SIk", "eIrMbAQSU34"},
	"chess":       {"OCSbzArwB10", "fKxG8KjH1Qg", "NAIQyoPcjNM", "21L45Qo6EIY", "rmDHUBPKiMk", "Ao9iOeK_jvU", "8IlJ3v8I4Z8"},
	"dancing":     {"3Xhe9rvm6Ys", "hTBPhNfV8A8", "AZaQqQGz7NA", "CKrDB7cUVG4", "p3PGf7uP0XU", "lbdLjjcWm_s", "yO5C0L3RONw"},
	"meditation":  {"inpok4MKVLM", "ZToicYcHIOU", "O-6f5wQXSu8", "6p_yaNFSYao", "z6X5oEIg6Ak", "U9YKY7fdwyg", "thcEuMDWxoI"},
}

// genericFallbackVideos cover hobbies without a curated list.
var genericFallbackVideos = []string{
	"IlU-zDU6aQ0", "5MgBikgcWnY", "rXN9P1PN2Ac", "H14bBuluwB8", "lIyVcd2bBfY", "Hu4Yvq-g7_Y", "eVGbd1gIXWI",
}

// FallbackVideoID returns a static tutorial id for hobby and day. Unknown
// hobbies use the generic list, so the result is never empty.
func FallbackVideoID(hobby string, day int) string {
	ids, ok := fallbackVideos[HobbyKey(hobby)]
	if !ok {
		ids = genericFallbackVideos
	}
	if day < 1 {
		day = 1
	}
	return ids[(day-1)%len(ids)]
}
