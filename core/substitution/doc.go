// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package substitution checks the variable placeholders embedded in message
templates.

Five placeholder syntaxes are recognised:

	%s, %d, ...   anonymous format placeholder
	%(name)s      keyword format placeholder
	$name         shell variable
	${name}       braced shell variable
	$(name)       parenthesised shell variable

[Extract] counts placeholder tokens, [Compare] reports placeholders that a
translation dropped or invented, [ValidateSyntax] reports malformed
placeholders and [GuardAnonymous] reports strings that use more than one
anonymous placeholder, which translators cannot reorder.

Every check is a pure function of its inputs and an explicit [Options] value.
*/
package substitution
