// Package advsearch embeds the advanced-search hooks in a Go host process
// without running the HTTP sidecar.
//
// User preferences are read from Valkey or Redis. Everything else comes
// from the options passed to New.
//
//	client, _ := advsearch.New(ctx,
//	    advsearch.WithValkey("localhost:6379", ""),
//	    advsearch.WithSearch(advsearch.SearchSettings{
//	        FileExtensions:    []string{"png", "pdf"},
//	        DefaultNamespaces: []int{0, 14},
//	    }),
//	)
//	defer client.Close()
//
//	out, _ := client.SearchResultsPrepend(ctx,
//	    advsearch.Request{URL: "https://wiki.example/w/index.php?search=cat"},
//	    advsearch.User{ID: 42, Name: "Dana", Named: true},
//	    "en",
//	)
//	if out.Active {
//	    // add out.HTML, out.Modules, out.ModuleStyles, out.ConfigVars to the page
//	}
package advsearch
