// Package io provides JSON import and export for ranked project registries.
//
// # JSON Format
//
// A registry is written as a single object with a "projects" array sorted
// by name:
//
//	{
//	  "projects": [
//	    {
//	      "name": "Acme.Core",
//	      "path": "src/Acme.Core/Acme.Core.csproj",
//	      "rank": 0,
//	      "package_refs": [{"name": "Serilog", "version": "3.1.1"}]
//	    },
//	    {
//	      "name": "Acme.Api",
//	      "rank": 1,
//	      "project_refs": ["Acme.Core"]
//	    }
//	  ]
//	}
//
// "rank" is omitted for projects that have none. Reference lists keep
// their declaration order and duplicates.
//
// # Export and Import
//
// [ExportJSON] and [WriteJSON] write a registry; [ImportJSON] and
// [ReadJSON] rebuild one. Stored ranks are restored after checking them
// against the references; a file without ranks is ranked on import. Files
// with dangling references or inconsistent ranks are rejected.
package io
