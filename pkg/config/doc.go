/*
Package config holds the source and target directory tables for filefetch.

	            +-------------+
	            |   Config    |
	            | (immutable) |
	            +------+------+
	                   |
	      +------------+------------+
	      |            |            |
	+-----+----+ +-----+----+ +-----+----+
	|   YAML   | |   HCL    | |   JSON   |
	|  Parser  | |  Parser  | |  Parser  |
	+----------+ +----------+ +----------+

🎯 Purpose:
- Replaces hard-coded path tables with one value loaded at start-up
- Fills anything the file leaves out from the built-in defaults
- Expands the yearly source group into individual roots

🔄 Flow:
1. Reads the file named by --config (or uses Default)
2. Picks a parser by extension
3. Overlays parsed values onto the defaults
4. Validates and cleans paths

After Load returns, the value is treated as read-only and handed to every
task by value.

🔍 Example:

	cfg, err := config.Load(ctx, "filefetch.hcl")
	if err != nil {
		return err
	}
	for _, root := range cfg.Roots() {
		fmt.Println(root.Name, root.Path)
	}
*/
package config
