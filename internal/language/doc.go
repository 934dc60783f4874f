// Package language loads language bundles: a syntax definition, a function
// library and a color theme described by one TOML file.
//
// A language file looks like:
//
//	name = "filterscript"
//	extensions = [".fs"]
//	library = ["mesh.json", "extra.lua"]
//
//	[syntax]
//	reserved = ["if", "else", "while", "function", "var", "return"]
//	joiner = "."
//
//	[theme.keyword]
//	fg = "darkblue"
//	bold = true
//
//	[[functions]]
//	name = "Mesh"
//	closer = "."
//
//	[[functions.children]]
//	label = "rotate by angle"
//	tooltip = "rotate(angle)"
//	closer = "("
//
// A function entry may give a free-form label instead of a name; the name
// is then derived from it (see naming.FunctionName). Sibling names that
// collide are renamed with naming.Dedupe.
//
// Extra library files listed under library are resolved relative to the
// language file. JSON files hold an array of entries shaped like
// [[functions]]. Lua files run in a sandbox exposing a small "library"
// module:
//
//	local mesh = library.add(library.root(), "Mesh", "", ".")
//	library.add(mesh, "scale", "scale(f)", "(")
//	library.find("Mesh.scale")   -- node id or nil
//	library.name("apply filter") -- "applyFilter"
package language
