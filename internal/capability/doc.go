// Package capability defines the host functions exposed to hook scripts.
//
// A [Host] carries the explicit context the functions need (working
// directory, logger, environment, prompter, exit policy) and
// [Host.Bindings] turns it into a flat table of [Binding] records grouped
// by namespace:
//
//	log   info warn error
//	fs    exists read_file write_file read_json write_json read_yaml
//	      write_yaml get_cwd mkdir find_file
//	os    getenv setenv shell is_tool
//	io    prompt
//	git   clone_repo init_submodules
//	http  fetch
//	zip   zip unzip
//
// Handlers receive script values already converted to Go (nil, bool,
// numbers, string, []any, map[string]any) and return values of the same
// shapes. Any returned error becomes a script error in the calling hook.
//
// Bindings are rebuilt for every session and hold no state of their own.
// The one deliberate cross-hook effect is os.setenv, which goes through
// the Host's procenv.Environment.
package capability
